package services

import (
	"context"
	"fmt"

	"taskflow/apperror"
	"taskflow/logging"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"google.golang.org/api/option"
)

// CaptchaAction is the reCAPTCHA action expected on registration tokens.
const CaptchaAction = "register"

// CaptchaVerifier checks a client-supplied captcha token.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, action, clientIP, userAgent string) error
}

type RecaptchaVerifier struct {
	client    *recaptcha.Client
	projectID string
	siteKey   string
	minScore  float32
}

type RecaptchaConfig struct {
	ProjectID       string
	SiteKey         string
	CredentialsFile string
	MinScore        float32
}

func NewRecaptchaVerifier(ctx context.Context, cfg RecaptchaConfig) (*RecaptchaVerifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := recaptcha.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create recaptcha client: %w", err)
	}
	return &RecaptchaVerifier{
		client:    client,
		projectID: cfg.ProjectID,
		siteKey:   cfg.SiteKey,
		minScore:  cfg.MinScore,
	}, nil
}

func (v *RecaptchaVerifier) Close() error {
	return v.client.Close()
}

func (v *RecaptchaVerifier) Verify(ctx context.Context, token, action, clientIP, userAgent string) error {
	if token == "" {
		return apperror.InvalidInput("captchaToken is required")
	}

	resp, err := v.client.CreateAssessment(ctx, &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: fmt.Sprintf("projects/%s", v.projectID),
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       v.siteKey,
				UserIpAddress: clientIP,
				UserAgent:     userAgent,
			},
		},
	})
	if err != nil {
		return apperror.Wrap(apperror.CodeInternal, "Captcha verification failed", err)
	}

	props := resp.GetTokenProperties()
	if props == nil || !props.GetValid() {
		logging.Logger.Warnf("Event ID: CAPTCHA_INVALID, Description: invalid captcha token: %s", props.GetInvalidReason())
		return apperror.Unauthorized("Captcha verification failed")
	}
	if action != "" && props.GetAction() != action {
		logging.Logger.Warnf("Event ID: CAPTCHA_ACTION_MISMATCH, Description: expected %q, got %q", action, props.GetAction())
		return apperror.Unauthorized("Captcha verification failed")
	}
	if score := resp.GetRiskAnalysis().GetScore(); score < v.minScore {
		logging.Logger.Warnf("Event ID: CAPTCHA_LOW_SCORE, Description: score %.2f below %.2f", score, v.minScore)
		return apperror.Unauthorized("Captcha verification failed")
	}
	return nil
}
