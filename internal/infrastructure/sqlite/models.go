package sqlite

import (
	"time"

	"github.com/jvanvugt/auto-cli/internal/domain/app"
)

// appModel represents a database row in the apps table.
// Time values are stored as Unix timestamps.
type appModel struct {
	Name      string
	Location  string
	Position  int64
	CreatedAt int64
	UpdatedAt int64
}

// toModel converts a domain App to a database row.
func toModel(a *app.App) appModel {
	return appModel{
		Name:      a.Name(),
		Location:  a.Location(),
		CreatedAt: a.CreatedAt().Unix(),
		UpdatedAt: a.UpdatedAt().Unix(),
	}
}

// toDomain converts a database row back to a domain App.
func (m appModel) toDomain() *app.App {
	return app.Rehydrate(
		m.Name,
		m.Location,
		time.Unix(m.CreatedAt, 0),
		time.Unix(m.UpdatedAt, 0),
	)
}
