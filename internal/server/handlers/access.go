package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/iudanet/barkeeper/internal/models"
	"github.com/iudanet/barkeeper/internal/server/storage"
	"github.com/iudanet/barkeeper/pkg/api"
)

// Notifier публикует изменения в realtime ленту
type Notifier interface {
	Publish(ev api.ChangeEvent, userIDs []string)
}

// Change actions reported in api.ChangeEvent.Action
const (
	ActionInsert = "insert"
	ActionUpdate = "update"
	ActionDelete = "delete"
)

// managerRoles может менять настройки бара и привязки официантов
var managerRoles = []models.Role{models.RoleOwner, models.RoleManager}

// authorize проверяет, что пользователь состоит в баре и, если roles не пуст, имеет одну из ролей
func authorize(ctx context.Context, bars storage.BarStorage, barID, userID string, roles ...models.Role) (models.Role, error) {
	// Отличаем отсутствующий бар от чужого
	if _, err := bars.GetBar(ctx, barID); err != nil {
		return "", err
	}

	role, err := bars.GetMemberRole(ctx, barID, userID)
	if err != nil {
		return "", err
	}

	if len(roles) > 0 && !slices.Contains(roles, role) {
		return role, fmt.Errorf("%w: %s", errForbidden, role)
	}
	return role, nil
}

// changeFeed рассылает события членам бара
type changeFeed struct {
	logger   *slog.Logger
	bars     storage.BarStorage
	notifier Notifier
	now      func() time.Time
}

func (f changeFeed) notify(ctx context.Context, table, action, barID, recordID string) {
	if f.notifier == nil {
		return
	}

	members, err := f.bars.ListMemberIDs(ctx, barID)
	if err != nil {
		// Событие не критично, клиенты всё равно перечитают данные
		f.logger.WarnContext(ctx, "failed to load bar members for change feed",
			slog.String("bar_id", barID), slog.Any("error", err))
		return
	}

	f.notifier.Publish(api.ChangeEvent{
		At:       f.now().UTC(),
		Table:    table,
		Action:   action,
		BarID:    barID,
		RecordID: recordID,
	}, members)
}
