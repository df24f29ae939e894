package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Veraticus/pocketbook/internal/common"
	"github.com/Veraticus/pocketbook/internal/service"
)

// HandleKey is the local key holding the recorded Handle.
const HandleKey = "sync_handle"

// Handle identifies a mirror target across sessions. Holding a Handle grants
// nothing; permission is requested each time it is activated.
type Handle struct {
	LinkedAt time.Time `json:"linkedAt"`
	URI      string    `json:"uri"`
}

func loadHandle(ctx context.Context, kv service.KVStore) (*Handle, error) {
	data, err := kv.Get(ctx, HandleKey)
	if errors.Is(err, common.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read sync handle: %w", err)
	}

	var h Handle
	if err := json.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("failed to decode sync handle: %w", err)
	}
	if h.URI == "" {
		return nil, fmt.Errorf("%w: sync handle has no uri", common.ErrDatabaseCorrupted)
	}
	return &h, nil
}

func saveHandle(ctx context.Context, kv service.KVStore, h Handle) error {
	data, err := json.Marshal(h)
	if err != nil {
		return fmt.Errorf("failed to encode sync handle: %w", err)
	}
	if err := kv.Put(ctx, HandleKey, data); err != nil {
		return fmt.Errorf("failed to store sync handle: %w", err)
	}
	return nil
}
