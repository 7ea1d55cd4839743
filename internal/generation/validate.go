package generation

import (
	"fmt"
	"strings"
)

const (
	defaultNumTurns = 5
	maxNumTurns     = 20

	defaultMaxNumSamples = 1000
)

var chatDomains = map[string]bool{
	"customer_support": true,
	"chatbot_training": true,
}

var emailDomains = map[string]bool{
	"spam_detection":         true,
	"business_communication": true,
}

var formats = map[string]bool{
	"json":  true,
	"csv":   true,
	"excel": true,
}

// ChatDomains lists the supported conversation domains.
func ChatDomains() []string {
	return []string{"customer_support", "chatbot_training"}
}

// EmailDomains lists the supported email domains.
func EmailDomains() []string {
	return []string{"spam_detection", "business_communication"}
}

func normalizeFormat(format string) (string, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return "json", nil
	}
	if !formats[format] {
		return "", fmt.Errorf("%w: format must be one of json, csv, excel", ErrInvalidRequest)
	}
	return format, nil
}

func (s *Service) maxSamples() int {
	if s.MaxNumSamples > 0 {
		return s.MaxNumSamples
	}
	return defaultMaxNumSamples
}

func (s *Service) validateSamples(numSamples int) error {
	if numSamples < 1 || numSamples > s.maxSamples() {
		return fmt.Errorf("%w: num_samples must be between 1 and %d", ErrInvalidRequest, s.maxSamples())
	}
	return nil
}

func (s *Service) validateTabular(req *TabularRequest) error {
	req.Domain = strings.ToLower(strings.TrimSpace(req.Domain))
	if !contains(s.Tabular.Domains(), req.Domain) {
		return fmt.Errorf("%w: unknown tabular domain %q", ErrInvalidRequest, req.Domain)
	}
	if err := s.validateSamples(req.NumSamples); err != nil {
		return err
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return err
	}
	req.Format = format
	return nil
}

func (s *Service) validateChat(req *ChatRequest) error {
	req.Domain = strings.ToLower(strings.TrimSpace(req.Domain))
	if !chatDomains[req.Domain] {
		return fmt.Errorf("%w: unknown chat domain %q", ErrInvalidRequest, req.Domain)
	}
	if err := s.validateSamples(req.NumSamples); err != nil {
		return err
	}
	if req.NumTurns == 0 {
		req.NumTurns = defaultNumTurns
	}
	if req.NumTurns < 1 || req.NumTurns > maxNumTurns {
		return fmt.Errorf("%w: num_turns must be between 1 and %d", ErrInvalidRequest, maxNumTurns)
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return err
	}
	req.Format = format
	return nil
}

func (s *Service) validateEmail(req *EmailRequest) error {
	req.Domain = strings.ToLower(strings.TrimSpace(req.Domain))
	if !emailDomains[req.Domain] {
		return fmt.Errorf("%w: unknown email domain %q", ErrInvalidRequest, req.Domain)
	}
	if err := s.validateSamples(req.NumSamples); err != nil {
		return err
	}
	if strings.TrimSpace(req.EmailType) == "" {
		req.EmailType = "business"
	}
	format, err := normalizeFormat(req.Format)
	if err != nil {
		return err
	}
	req.Format = format
	return nil
}

func contains(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}
