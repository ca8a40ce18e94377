package utils

import (
	"encoding/json"
	"fmt"
	"log"

	"gkb/config"

	"github.com/go-resty/resty/v2"
)

// ProcessPayment charges the subscription cost through the configured
// payment gateway. When no gateway is configured the charge is
// auto-approved, which keeps local and staging environments working
// without payment credentials.
func ProcessPayment(userID uint, email string, amount int, reference string) error {
	if config.AppConfig.PaymentApiURL == "" {
		log.Printf("[PAYMENT] No gateway configured, auto-approving charge of %d for user %d", amount, userID)
		return nil
	}

	client := resty.New()
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.PaymentApiKey).
		SetHeader("X-Secret-Key", config.AppConfig.PaymentSecretKey).
		SetBody(map[string]interface{}{
			"amount":    amount,
			"currency":  "INR",
			"email":     email,
			"reference": reference,
		}).
		Post(config.AppConfig.PaymentApiURL + "/charges")
	if err != nil {
		log.Printf("[PAYMENT] Charge request failed: %v", err)
		return err
	}

	if resp.StatusCode() != 200 {
		log.Printf("[PAYMENT] Charge declined: %s", resp.String())
		return fmt.Errorf("payment failed, code: %d", resp.StatusCode())
	}

	var chargeResp struct {
		Status string `json:"status"`
		ID     string `json:"id"`
	}
	if err := json.Unmarshal(resp.Body(), &chargeResp); err != nil {
		log.Printf("[PAYMENT] Failed to parse charge response: %v", err)
		return err
	}

	if chargeResp.Status != "succeeded" {
		return fmt.Errorf("payment not completed, status: %s", chargeResp.Status)
	}

	log.Printf("[PAYMENT] Charge %s succeeded for user %d", chargeResp.ID, userID)
	return nil
}
