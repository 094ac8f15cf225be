package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
)

type ResponseWriter struct {
	http.ResponseWriter
	StatusCode int
}

func (rw *ResponseWriter) WriteHeader(statusCode int) {
	rw.StatusCode = statusCode
	rw.ResponseWriter.WriteHeader(statusCode)
}

func (h *Handler) logger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &ResponseWriter{ResponseWriter: w}
		next.ServeHTTP(rw, r)
		duration := time.Since(start)
		slog.Info("запрос обработан", "status", rw.StatusCode, "ip", r.RemoteAddr, "method", r.Method, "path", r.URL.Path, "duration", duration)
	})
}

func (h *Handler) recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				h.internalServerError(w, r, fmt.Errorf("panic: %v", err))
				stackTrace := string(debug.Stack())
				fmt.Print(stackTrace) // через slog стек читается плохо
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// schedulePeriod разбирает параметр {period} вида YYYY-MM и кладёт год и
// месяц в контекст запроса.
func (h *Handler) schedulePeriod(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		periodParam := chi.URLParam(r, "period")

		year, month, err := parsePeriod(periodParam)
		if err != nil {
			h.errorResponse(w, r, "ожидается период в формате ГГГГ-ММ, например 2025-10")
			return
		}

		ctx := r.Context()
		ctx = context.WithValue(ctx, YearCtxKey, year)
		ctx = context.WithValue(ctx, MonthCtxKey, month)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func parsePeriod(period string) (year, month int, err error) {
	parts := strings.SplitN(period, "-", 2)
	if len(parts) != 2 || len(parts[0]) != 4 || len(parts[1]) != 2 {
		return 0, 0, fmt.Errorf("invalid period %q", period)
	}
	year, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, err
	}
	month, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, err
	}
	if month < 1 || month > 12 {
		return 0, 0, fmt.Errorf("invalid month %d", month)
	}
	return year, month, nil
}
