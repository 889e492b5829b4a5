package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/terraincognita07/nutrilog/internal/config"
	"github.com/terraincognita07/nutrilog/internal/models"
	"github.com/terraincognita07/nutrilog/internal/security"
	"github.com/terraincognita07/nutrilog/internal/services"
)

// RunTokenCommand issues a bearer token for subject and prints it with the
// storage key the subject maps to.
func RunTokenCommand(out io.Writer, secretKey string, subject string, ttl time.Duration, now time.Time) error {
	secretKey = strings.TrimSpace(secretKey)
	if err := config.ValidateSecretKey(secretKey); err != nil {
		return err
	}
	userKey, err := services.UserKeyForSubject(subject)
	if err != nil {
		return err
	}

	token, err := services.BuildAccessToken([]byte(secretKey), subject, ttl, now)
	if err != nil {
		return fmt.Errorf("issue token: %w", err)
	}

	fmt.Fprintf(out, "User key: %s\n", userKey)
	fmt.Fprintf(out, "Token: %s\n", token)
	return nil
}

func RunLimitsCommand(out io.Writer, profile models.UserProfile) error {
	normalized, err := services.NormalizeProfile(profile)
	if err != nil {
		return fmt.Errorf("%w: weight 10-400 kg, height 50-250 cm, age 1-120, gender M or F", err)
	}

	limits := services.CalculatePersonalLimits(normalized)
	fmt.Fprintf(out, "BMR: %.1f kcal\n", services.BasalMetabolicRate(normalized))
	fmt.Fprintf(out, "TDEE: %.1f kcal (%s)\n", services.TotalDailyEnergyExpenditure(normalized), normalized.ActivityLevel)
	fmt.Fprintf(out, "Calories: %.0f kcal\n", limits.Calorii)
	fmt.Fprintf(out, "Salt: %.0f g\n", limits.Sare)
	fmt.Fprintf(out, "Sugar: %.0f g\n", limits.Zahar)
	fmt.Fprintf(out, "Fat: %.0f g\n", limits.Grasimi)
	return nil
}

func RunSecretCommand(out io.Writer, length int) error {
	if length > 0 && length < config.MinSecretKeyLength {
		return config.ErrSecretKeyTooShort
	}
	secret, err := security.GenerateSecretKey(length)
	if err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	fmt.Fprintln(out, secret)
	return nil
}
