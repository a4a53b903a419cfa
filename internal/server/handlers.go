package server

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/Shajey/allergy-angel-v1-sub002/internal/domain"
	apperrors "github.com/Shajey/allergy-angel-v1-sub002/internal/errors"
)

// maxCheckTextLength bounds raw submission text.
const maxCheckTextLength = 10000

type submitCheckRequest struct {
	ProfileID string `json:"profileId"`
	Text      string `json:"text"`
}

type saveProfileRequest struct {
	KnownAllergies     []string            `json:"knownAllergies"`
	CurrentMedications []domain.Medication `json:"currentMedications"`
}

type insightsResponse struct {
	Insights    []domain.StackingInsight `json:"insights"`
	WindowHours int                      `json:"windowHours"`
}

func (s *Server) handleSubmitCheck(c echo.Context) error {
	var req submitCheckRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return apperrors.ValidationError("invalid profile ID format").WithContext("profile_id", req.ProfileID)
	}

	if strings.TrimSpace(req.Text) == "" {
		return apperrors.ValidationError("text must not be blank")
	}
	if len(req.Text) > maxCheckTextLength {
		return apperrors.ValidationError("text too long").WithContext("max_length", maxCheckTextLength)
	}

	check, err := s.app.SubmitCheck(c.Request().Context(), profileID, req.Text)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrProfileNotFound):
			return apperrors.NotFoundError("profile not found").WithContext("profile_id", profileID.String())
		case errors.Is(err, domain.ErrRateLimited):
			return apperrors.RateLimitedError("too many checks, try again later").WithContext("profile_id", profileID.String())
		default:
			return apperrors.InternalError("failed to process check", err).WithContext("profile_id", profileID.String())
		}
	}

	if err := c.JSON(201, check); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleGetProfile(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	profile, err := s.app.GetProfile(c.Request().Context(), profileID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return apperrors.NotFoundError("profile not found").WithContext("profile_id", profileID.String())
		}
		return apperrors.InternalError("failed to load profile", err).WithContext("profile_id", profileID.String())
	}

	if err := c.JSON(200, profile); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleSaveProfile(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	var req saveProfileRequest
	if err := c.Bind(&req); err != nil {
		return apperrors.ValidationError("invalid request body")
	}

	for _, med := range req.CurrentMedications {
		if strings.TrimSpace(med.Name) == "" {
			return apperrors.ValidationError("medication name must not be blank")
		}
	}

	profile, err := s.app.SaveProfile(c.Request().Context(), profileID, req.KnownAllergies, req.CurrentMedications)
	if err != nil {
		return apperrors.InternalError("failed to save profile", err).WithContext("profile_id", profileID.String())
	}

	if err := c.JSON(200, profile); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func (s *Server) handleInsights(c echo.Context) error {
	profileID, err := parseProfileID(c)
	if err != nil {
		return err
	}

	windowHours := s.config.StackingWindowHours
	if raw := c.QueryParam("windowHours"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			return apperrors.ValidationError("windowHours must be a positive integer").WithContext("window_hours", raw)
		}
		windowHours = parsed
	}

	insights, err := s.app.Insights(c.Request().Context(), profileID, windowHours)
	if err != nil {
		return apperrors.InternalError("failed to compute insights", err).WithContext("profile_id", profileID.String())
	}

	if err := c.JSON(200, insightsResponse{Insights: insights, WindowHours: windowHours}); err != nil {
		return fmt.Errorf("failed to send JSON response: %w", err)
	}
	return nil
}

func parseProfileID(c echo.Context) (uuid.UUID, error) {
	raw := c.Param("id")
	profileID, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.ValidationError("invalid profile ID format").WithContext("profile_id", raw)
	}
	return profileID, nil
}
