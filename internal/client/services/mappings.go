package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/iudanet/barkeeper/internal/client/cache"
	"github.com/iudanet/barkeeper/internal/client/queue"
	"github.com/iudanet/barkeeper/internal/client/reconcile"
	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/validation"
	"github.com/iudanet/barkeeper/pkg/api"
)

// ServerMappings wraps the server_mappings table.
type ServerMappings struct {
	base
}

// NewServerMappings creates the server mappings service
func NewServerMappings(d Deps) *ServerMappings {
	return &ServerMappings{base: newBase(d)}
}

// ListMappings returns the server-name mappings of a bar.
func (s *ServerMappings) ListMappings(ctx context.Context, barID string) (Snapshot[models.ServerMapping], error) {
	return read(ctx, &s.base, cache.MappingsKey(barID), models.ServerMapping.Valid,
		func(ctx context.Context) ([]models.ServerMapping, error) {
			mappings, err := s.API.ListMappings(ctx, barID)
			if err != nil {
				return nil, err
			}
			return mapSlice(mappings, MappingFromAPI), nil
		})
}

// GetUserIDForServerName resolves a server name to a user id.
// It returns "" with a nil error when no mapping exists; pending upserts and
// deletes made offline are taken into account.
func (s *ServerMappings) GetUserIDForServerName(ctx context.Context, barID, serverName string) (string, error) {
	if strings.TrimSpace(serverName) == "" {
		return "", nil
	}

	snap, err := s.ListMappings(ctx, barID)
	if err != nil {
		return "", err
	}

	merged := reconcile.MergeMappings(snap.Records, s.pending(ctx))
	for _, m := range merged {
		if m.BarID == barID && m.Matches(serverName) {
			return m.UserID, nil
		}
	}
	return "", nil
}

// UpsertMapping maps serverName to userID in a bar.
func (s *ServerMappings) UpsertMapping(ctx context.Context, barID, serverName, userID string) (models.ServerMapping, error) {
	if err := validation.ValidateServerName(serverName); err != nil {
		return models.ServerMapping{}, err
	}
	if barID == "" || userID == "" {
		return models.ServerMapping{}, fmt.Errorf("bar id and user id are required")
	}
	serverName = strings.TrimSpace(serverName)

	entityID := models.MappingEntityID(barID, serverName)
	queued, err := s.shouldQueue(ctx, entityID)
	if err != nil {
		return models.ServerMapping{}, err
	}
	queued = queued || models.IsTempID(barID)

	key := queue.NewKey()
	if !queued {
		mapping, err := s.API.UpsertMapping(ctx, key, api.UpsertMappingRequest{
			BarID:      barID,
			ServerName: serverName,
			UserID:     userID,
		})
		if err != nil {
			return models.ServerMapping{}, err
		}
		return MappingFromAPI(*mapping), nil
	}

	payload := models.UpsertMappingPayload{BarID: barID, ServerName: serverName, UserID: userID}
	if err := s.enqueue(ctx, key, payload, entityID); err != nil {
		return models.ServerMapping{}, err
	}
	return models.ServerMapping{
		ID:         key,
		BarID:      barID,
		ServerName: serverName,
		UserID:     userID,
		CreatedAt:  s.Now().UTC(),
	}, nil
}

// DeleteMapping removes the mapping of serverName in a bar.
func (s *ServerMappings) DeleteMapping(ctx context.Context, barID, serverName string) error {
	serverName = strings.TrimSpace(serverName)
	if barID == "" || serverName == "" {
		return fmt.Errorf("bar id and server name are required")
	}

	entityID := models.MappingEntityID(barID, serverName)
	queued, err := s.shouldQueue(ctx, entityID)
	if err != nil {
		return err
	}
	queued = queued || models.IsTempID(barID)

	key := queue.NewKey()
	if !queued {
		return s.API.DeleteMapping(ctx, key, barID, serverName)
	}

	return s.enqueue(ctx, key, models.DeleteMappingPayload{BarID: barID, ServerName: serverName}, entityID)
}
