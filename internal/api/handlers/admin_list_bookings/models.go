package admin_list_bookings

import (
	"net/url"
	"time"

	"github.com/m04kA/SMC-RitualService/internal/domain"
	"github.com/m04kA/SMC-RitualService/internal/service/bookings/models"
)

// ParseListRequest собирает AdminListRequest из query-параметров
func ParseListRequest(adminUserID string, query url.Values) (*models.AdminListRequest, error) {
	req := &models.AdminListRequest{
		AdminUserID:   adminUserID,
		OnlyLive:      query.Get("only_live") == "true",
		OnlyOverrides: query.Get("only_overrides") == "true",
	}

	if v := query.Get("start_date"); v != "" {
		startDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.StartDate = &startDate
	}

	if v := query.Get("end_date"); v != "" {
		endDate, err := time.Parse(domain.DateFormat, v)
		if err != nil {
			return nil, err
		}
		req.EndDate = &endDate
	}

	if v := query.Get("status"); v != "" {
		req.Status = &v
	}

	return req, nil
}
