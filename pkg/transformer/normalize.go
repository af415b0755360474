// SPDX-License-Identifier: Apache-2.0

package transformer

import "strings"

const (
	defaultServiceType = "standard"
	defaultFrequency   = "one-time"

	paymentStatusCompleted = "completed"
	paymentStatusPending   = "pending"
)

// legacy frequencies that no longer exist in the target schema
var frequencyAliases = map[string]string{
	"custom-weekly": "weekly",
}

// NormalizeServiceType lower cases the service type, defaulting to "standard"
// when it's empty.
func NormalizeServiceType(serviceType string) string {
	serviceType = strings.ToLower(strings.TrimSpace(serviceType))
	if serviceType == "" {
		return defaultServiceType
	}
	return serviceType
}

// NormalizeFrequency lower cases the booking frequency, defaulting to
// "one-time" when it's empty and collapsing legacy aliases.
func NormalizeFrequency(frequency string) string {
	frequency = strings.ToLower(strings.TrimSpace(frequency))
	if frequency == "" {
		return defaultFrequency
	}
	if alias, found := frequencyAliases[frequency]; found {
		return alias
	}
	return frequency
}

// SplitName splits a full name on its first space. Everything after the first
// space is considered the last name.
func SplitName(fullName string) (first, last string) {
	first, last, _ = strings.Cut(strings.TrimSpace(fullName), " ")
	return first, last
}

func NormalizeStatus(status string) string {
	return strings.ToLower(strings.TrimSpace(status))
}

// PaymentStatus derives the payment status from a normalized booking status.
func PaymentStatus(status string) string {
	if status == paymentStatusCompleted {
		return paymentStatusCompleted
	}
	return paymentStatusPending
}
