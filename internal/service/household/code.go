package household

import (
	"context"
	"crypto/rand"
	"fmt"

	"github.com/tboivin/swipemeal-backend/internal/domain"
)

const codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateCode draws random join codes until one is free or the attempt
// budget runs out. The unique constraint still backstops the race where two
// creations draw the same code concurrently.
func (s *Service) generateCode(ctx context.Context) (string, error) {
	for attempt := 0; attempt < s.codeMaxAttempts; attempt++ {
		code, err := randomCode(domain.HouseholdCodeLength)
		if err != nil {
			return "", fmt.Errorf("generate code: %w", err)
		}

		taken, err := s.households.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if !taken {
			return code, nil
		}
	}

	return "", fmt.Errorf("generate code: no free code after %d attempts: %w",
		s.codeMaxAttempts, domain.ErrConflict)
}

// randomCode samples length characters uniformly from codeAlphabet.
// Bytes >= 252 are rejected to avoid modulo bias (252 = 7 * 36).
func randomCode(length int) (string, error) {
	const limit = byte(252)

	out := make([]byte, 0, length)
	buf := make([]byte, length)
	for len(out) < length {
		if _, err := rand.Read(buf); err != nil {
			return "", err
		}
		for _, b := range buf {
			if b >= limit {
				continue
			}
			out = append(out, codeAlphabet[int(b)%len(codeAlphabet)])
			if len(out) == length {
				break
			}
		}
	}

	return string(out), nil
}
