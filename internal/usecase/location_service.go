package usecase

import (
	"context"

	"github.com/riskibarqy/club-backoffice/internal/domain/location"
	"github.com/riskibarqy/club-backoffice/internal/domain/user"
	"github.com/riskibarqy/club-backoffice/internal/platform/editbuffer"
)

// LocationAdminService is the locations tab.
type LocationAdminService struct {
	*EditTab[location.Location, location.Patch]
}

func NewLocationAdminService(workspaces *WorkspaceManager) *LocationAdminService {
	return &LocationAdminService{
		EditTab: &EditTab[location.Location, location.Patch]{
			name:       "location",
			workspaces: workspaces,
			controller: func(ws *Workspace) *editbuffer.Controller[location.Location] { return ws.Locations },
			defaults:   func(*Workspace) func(string) location.Location { return location.Draft },
		},
	}
}

func (s *LocationAdminService) List(ctx context.Context, admin user.AuthorizedUser, search string) ([]RowView[location.Location], error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LocationAdminService.List")
	defer span.End()

	_, ctrl, err := s.open(ctx, admin)
	if err != nil {
		return nil, err
	}
	return rowViews(ctrl, location.Filter(ctrl.Rows(), search), nil), nil
}
