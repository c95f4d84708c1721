package memory

import (
	"context"
	"slices"

	"github.com/riskibarqy/club-backoffice/internal/domain/signup"
)

type SignupRepository struct {
	store *Store
}

func NewSignupRepository(store *Store) *SignupRepository {
	return &SignupRepository{store: store}
}

func (r *SignupRepository) ListBySetting(_ context.Context, settingID string) ([]signup.Signup, error) {
	items := r.store.signups.list(
		func(item signup.Signup) bool { return item.SettingID == settingID },
		func(a, b signup.Signup) int { return newestFirst(a.CreatedAt, b.CreatedAt) },
	)
	for i := range items {
		items[i].Division = nil
		if division, ok := r.store.divisions.get(items[i].DivisionID); ok {
			items[i].Division = &division
		}
	}
	return items, nil
}

func (r *SignupRepository) Create(_ context.Context, item signup.Signup) (signup.Signup, error) {
	if item.CreatedAt.IsZero() {
		item.CreatedAt = r.store.now().UTC()
	}
	division := item.Division
	item.Division = nil
	saved := r.store.signups.insert(item)
	saved.Division = division
	return saved, nil
}

func (r *SignupRepository) SetConfirmedPaid(_ context.Context, id string, paid bool) error {
	return r.store.signups.mutate(id, func(item signup.Signup) signup.Signup {
		item.ConfirmedPaid = paid
		return item
	})
}

func (r *SignupRepository) Delete(_ context.Context, id string) error {
	r.store.signups.delete(id)
	return nil
}

// detachSignups clears references to a deleted setting or its divisions.
func (s *Store) detachSignups(settingID string, divisionIDs []string) {
	for _, item := range s.signups.list(nil, nil) {
		clearSetting := settingID != "" && item.SettingID == settingID
		clearDivision := slices.Contains(divisionIDs, item.DivisionID)
		if !clearSetting && !clearDivision {
			continue
		}
		_ = s.signups.mutate(item.ID, func(current signup.Signup) signup.Signup {
			if clearSetting {
				current.SettingID = ""
			}
			if clearDivision {
				current.DivisionID = ""
			}
			return current
		})
	}
}
