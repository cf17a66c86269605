// ABOUTME: RSS feed generation for the weekly report digest using gorilla/feeds.
// ABOUTME: One feed item per report, linking to the report's static page.
package site

import (
	"fmt"
	"time"

	"github.com/gorilla/feeds"

	"github.com/astroicers/secweekly/weekly"
)

// FeedPath is the feed location relative to the site root.
const FeedPath = "weekly/feed.xml"

// BuildFeed renders the RSS 2.0 feed for the given reports. Reports are
// expected newest first; items keep that order. A report whose date fails to
// parse still gets an item, just without a publication time.
func BuildFeed(cfg Config, reports []weekly.Report, now time.Time) (string, error) {
	feed := &feeds.Feed{
		Title:       cfg.Title,
		Link:        &feeds.Link{Href: cfg.BaseURL},
		Description: cfg.Description,
		Created:     now,
	}
	if cfg.Author != "" {
		feed.Author = &feeds.Author{Name: cfg.Author}
	}

	for _, r := range reports {
		item := &feeds.Item{
			Id:          cfg.AbsURL(r.Page()),
			Title:       r.Title,
			Link:        &feeds.Link{Href: cfg.AbsURL(r.Page())},
			Description: r.Summary,
		}
		if t, err := r.Time(); err == nil {
			item.Created = t
		}
		feed.Items = append(feed.Items, item)
	}

	rss, err := feed.ToRss()
	if err != nil {
		return "", fmt.Errorf("render rss feed: %w", err)
	}
	return rss, nil
}
