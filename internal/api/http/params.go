package http

import (
	"net/http"
	"strconv"
	"time"

	"gearcheck-backend/internal/domain"

	"github.com/gorilla/mux"
)

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError("invalid %s %q", name, raw)
	}
	return int32(id), nil
}

func queryInt32(r *http.Request, name string) (int32, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, domain.NewValidationError("invalid %s %q", name, raw)
	}
	return int32(v), nil
}

func queryTime(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, domain.NewValidationError("invalid %s %q, want RFC3339", name, raw)
	}
	return t, nil
}

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

func queryPage(r *http.Request) (domain.Page, error) {
	number, err := queryInt32(r, "page")
	if err != nil {
		return domain.Page{}, err
	}
	size, err := queryInt32(r, "page_size")
	if err != nil {
		return domain.Page{}, err
	}
	if number < 1 {
		number = 1
	}
	if size < 1 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return domain.Page{Number: number, Size: size}, nil
}
