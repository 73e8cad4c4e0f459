// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Converts domain errors to appropriate HTTP responses

package handlers

import (
	"github.com/danielgtaylor/huma/v2"

	"contentsage-api/core/errors"
)

// toHumaError converts domain errors to appropriate Huma HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsNotFound(err) {
		return huma.Error404NotFound(err.Error())
	}

	if errors.IsValidation(err) {
		return huma.Error400BadRequest(err.Error())
	}

	if errors.IsFetch(err) {
		// The remote page could not be retrieved; blame the submitted URL
		if fetchErr, ok := err.(*errors.FetchError); ok {
			switch {
			case fetchErr.StatusCode == 404:
				return huma.Error404NotFound("URL not found: " + fetchErr.URL)
			case fetchErr.StatusCode >= 400 && fetchErr.StatusCode < 500:
				return huma.Error400BadRequest("URL could not be fetched", err)
			default:
				return huma.Error502BadGateway("upstream fetch failed", err)
			}
		}
		return huma.Error502BadGateway("upstream fetch failed", err)
	}

	if errors.IsExternalAPI(err) {
		if apiErr, ok := err.(*errors.ExternalAPIError); ok {
			switch {
			case apiErr.StatusCode >= 500:
				return huma.Error503ServiceUnavailable("external service error", err)
			case apiErr.StatusCode == 429:
				return huma.Error429TooManyRequests("rate limited by external service")
			case apiErr.StatusCode >= 400:
				return huma.Error400BadRequest("external service request error", err)
			default:
				return huma.Error503ServiceUnavailable("external service error", err)
			}
		}
	}

	return huma.Error500InternalServerError("internal server error", err)
}
