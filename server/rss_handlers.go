package server

import (
	"log"
	"net/http"
	"strconv"

	"github.com/umputun/newsnearme/pkg/domain"
)

// rssHandler runs a news search for the detected location and serves it as RSS.
// Query params: limit (one of the allowed limits, default from config) and categories.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := domain.NewsQuery{
		Limit:    s.config.GetFullConfig().UI.DefaultLimit,
		Category: r.URL.Query().Get("categories"),
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		limit, err := strconv.Atoi(limitStr)
		if err != nil || !domain.ValidLimit(limit) {
			http.Error(w, "Invalid limit", http.StatusBadRequest)
			return
		}
		query.Limit = limit
	}

	news, _, err := s.api.Search(ctx, query)
	if err != nil {
		log.Printf("[ERROR] failed to get news for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusBadGateway)
		return
	}

	rss, err := s.feeds.GenerateRSS(news, query)
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}
