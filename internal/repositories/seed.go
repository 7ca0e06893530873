package repositories

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"adminpanel/internal/domain"

	"github.com/google/uuid"
)

var (
	seedFirstNames = []string{"Ava", "Liam", "Noah", "Emma", "Olivia", "Mason", "Sofia", "Lucas", "Mia", "Ethan", "Amara", "Kenji", "Priya", "Mateo", "Zara", "Omar"}
	seedLastNames  = []string{"Walker", "Nguyen", "Okafor", "Schmidt", "Rossi", "Tanaka", "Silva", "Haddad", "Kowalski", "Fischer", "Moreau", "Patel", "Larsen", "Costa"}
)

// SeedUsers inserts n generated users with creation dates spread over the year
// before now. Generated emails are unique within one call.
func SeedUsers(ctx context.Context, repo UserRepository, n int, rnd *rand.Rand, now time.Time) error {
	for i := 0; i < n; i++ {
		first := seedFirstNames[rnd.Intn(len(seedFirstNames))]
		last := seedLastNames[rnd.Intn(len(seedLastNames))]
		age := time.Duration(rnd.Int63n(int64(365 * 24 * time.Hour)))

		u := domain.User{
			ID:        uuid.NewString(),
			Name:      first + " " + last,
			Email:     fmt.Sprintf("%s.%s%d@example.com", strings.ToLower(first), strings.ToLower(last), i+1),
			Role:      domain.Roles[rnd.Intn(len(domain.Roles))],
			CreatedAt: domain.FormatTimestamp(now.Add(-age)),
		}
		if err := repo.Create(ctx, u); err != nil {
			if domain.IsConflict(err) {
				continue
			}
			return fmt.Errorf("seed user %d: %w", i+1, err)
		}
	}
	return nil
}
