package league

import "context"

// SettingRepository lists settings by signup start, latest first.
type SettingRepository interface {
	List(ctx context.Context) ([]Setting, error)
	GetByID(ctx context.Context, id string) (Setting, bool, error)
	Insert(ctx context.Context, item Setting) (Setting, error)
	Update(ctx context.Context, item Setting) error
	Delete(ctx context.Context, id string) error
}

// DivisionRepository lists divisions ordered by name.
type DivisionRepository interface {
	List(ctx context.Context) ([]Division, error)
	ListBySetting(ctx context.Context, settingID string) ([]Division, error)
	Insert(ctx context.Context, item Division) (Division, error)
	Update(ctx context.Context, item Division) error
	Delete(ctx context.Context, id string) error
}

// FlightRepository lists flights ordered by flight name.
type FlightRepository interface {
	List(ctx context.Context) ([]Flight, error)
	Insert(ctx context.Context, item Flight) (Flight, error)
	Update(ctx context.Context, item Flight) error
	Delete(ctx context.Context, id string) error
}
