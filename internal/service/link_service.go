package service

import (
	"context"
	"errors"

	"shortlink/internal/domain"
	"shortlink/internal/metrics"
	"shortlink/internal/repository"
	"shortlink/pkg/logger"
)

// LinkService handles business logic for short links
// It sits between the HTTP handlers and the store, adding metrics and logging
// without changing the store's results or errors.
type LinkService struct {
	links  repository.LinkRepository
	logger *logger.Logger
}

// NewLinkService creates a new link service
func NewLinkService(links repository.LinkRepository, log *logger.Logger) *LinkService {
	return &LinkService{
		links:  links,
		logger: log,
	}
}

// Shorten stores url under a new key
func (s *LinkService) Shorten(ctx context.Context, url string) (domain.Key, error) {
	key, err := s.links.Shorten(url)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyInput) {
			metrics.RecordShortenRejected()
		}
		return 0, err
	}

	metrics.RecordLinkShortened()
	s.logger.WithContext(ctx).Debug("Link shortened", "link", domain.Link{Key: key, URL: url})

	return key, nil
}

// Redirect resolves key to its stored url
func (s *LinkService) Redirect(ctx context.Context, key domain.Key) (string, error) {
	url, err := s.links.Redirect(key)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			metrics.RecordRedirectMiss()
		}
		return "", err
	}

	metrics.RecordRedirect()
	s.logger.WithContext(ctx).Debug("Link resolved", "link", domain.Link{Key: key, URL: url})

	return url, nil
}
