package booking

import "github.com/m04kA/SMC-RitualService/pkg/dbmetrics"

// DBExecutor интерфейс исполнителя SQL-запросов
// Поддерживает *sql.DB и *dbmetrics.DB
type DBExecutor = dbmetrics.DBExecutor
