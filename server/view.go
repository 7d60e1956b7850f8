package server

import (
	"html"
	"net/url"
	"strconv"

	"github.com/microcosm-cc/bluemonday"

	"github.com/umputun/newsnearme/pkg/dashboard"
	"github.com/umputun/newsnearme/pkg/domain"
)

// pageView is everything the dashboard templates render. It is built from the session state only.
type pageView struct {
	Title      string
	Version    string
	Health     string // online, offline or empty before the first check
	Location   *domain.Location
	Services   []serviceView
	Limits     []optionView
	Categories []optionView
	Category   string
	City       string // place typed by the user, echoed back into the inputs
	Country    string
	Loading    bool
	News       []newsView
	ShowEmpty  bool
	Response   *responseView
	RSSURL     string
}

type serviceView struct {
	domain.Service
	Active bool
}

type optionView struct {
	Value    string
	Selected bool
}

type newsView struct {
	ID              string
	Category        string
	Title           string
	Summary         string
	Score           string
	LocationContext string
	EstimatedDate   string
	Keywords        []string
}

type responseView struct {
	Service domain.ServiceID
	Name    string
	Icon    string
	Body    string
	IsErr   bool
}

// buildPageView maps the state to the view. Text coming from the API is stripped of markup.
func buildPageView(st dashboard.State, policy *bluemonday.Policy, title, version string) pageView {
	clean := func(s string) string {
		return html.UnescapeString(policy.Sanitize(s))
	}

	res := pageView{
		Title:     title,
		Version:   version,
		Category:  st.Category,
		Loading:   st.Loading(),
		ShowEmpty: st.ShowEmpty(),
		RSSURL:    rssURL(st),
	}

	switch st.Health {
	case domain.HealthOnline:
		res.Health = "online"
	case domain.HealthOffline:
		res.Health = "offline"
	}

	if st.Location != nil {
		res.Location = &domain.Location{
			City:     clean(st.Location.City),
			Region:   clean(st.Location.Region),
			Country:  clean(st.Location.Country),
			Timezone: clean(st.Location.Timezone),
		}
	}

	for _, svc := range domain.Services() {
		res.Services = append(res.Services, serviceView{Service: svc, Active: svc.ID == st.ActiveService})
	}

	for _, l := range domain.NewsLimits() {
		res.Limits = append(res.Limits, optionView{Value: strconv.Itoa(l), Selected: l == st.Limit})
	}

	for _, c := range st.Categories {
		res.Categories = append(res.Categories, optionView{Value: c.Value, Selected: c.Value == st.Category})
	}

	for _, n := range st.News {
		item := newsView{
			ID:              string(n.ID),
			Category:        clean(n.Category),
			Title:           clean(n.Title),
			Summary:         clean(n.Summary),
			Score:           n.Score(),
			LocationContext: clean(n.LocationContext),
			EstimatedDate:   clean(n.EstimatedDate),
		}
		for _, k := range n.Keywords {
			if k = clean(k); k != "" {
				item.Keywords = append(item.Keywords, k)
			}
		}
		res.News = append(res.News, item)
	}

	if st.Response != nil {
		resp := &responseView{Service: st.Response.Service, Body: st.Response.Pretty(), IsErr: st.Response.IsErr()}
		if svc, ok := domain.LookupService(st.Response.Service); ok {
			resp.Name, resp.Icon = svc.Name, svc.Icon
		}
		res.Response = resp
	}

	return res
}

// rssURL returns link to the RSS export of the current search
func rssURL(st dashboard.State) string {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(st.Limit))
	if st.Category != "" {
		params.Set("categories", st.Category)
	}
	return "/rss?" + params.Encode()
}
