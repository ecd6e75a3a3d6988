package store

import (
	"context"
	"time"
)

// CurrentSnapshotVersion is the snapshot layout written by this build.
const CurrentSnapshotVersion = 1

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Kind   string    // exact event kind, empty for all
}

// SnapshotData captures the full crafting state at a point in time.
type SnapshotData struct {
	Version           int                             `json:"version"`
	RecipePackVersion string                          `json:"recipe_pack_version,omitempty"`
	Professions       map[string]*ProfessionStateData `json:"professions,omitempty"`
	KnownRecipes      map[string][]string             `json:"known_recipes,omitempty"`
	Recipes           []RecipeData                    `json:"recipes,omitempty"`
	Queue             []CraftJobData                  `json:"queue,omitempty"`
	Inventory         *InventorySnapshotData          `json:"inventory,omitempty"`
}

// ProfessionStateData is the persisted level and experience of one profession.
type ProfessionStateData struct {
	Level      int `json:"level"`
	Experience int `json:"experience"`
}

// MaterialData is one material requirement of a persisted recipe.
type MaterialData struct {
	ItemKind string `json:"item_kind"`
	Quantity int    `json:"quantity"`
}

// RecipeData is the persisted form of a recipe definition.
type RecipeData struct {
	ID               string         `json:"id"`
	Name             string         `json:"name"`
	Description      string         `json:"description,omitempty"`
	Profession       string         `json:"profession"`
	RequiredLevel    int            `json:"required_level"`
	Materials        []MaterialData `json:"materials"`
	OutputItemKind   string         `json:"output_item_kind"`
	OutputQuantity   int            `json:"output_quantity"`
	DurationMs       int64          `json:"duration_ms"`
	ExperienceReward int            `json:"experience_reward"`
	Authored         bool           `json:"authored,omitempty"`
}

// CraftJobData is the persisted form of a craft job. StartTimeMs is nil
// while the job is queued.
type CraftJobData struct {
	ID          string     `json:"id"`
	Recipe      RecipeData `json:"recipe"`
	Status      string     `json:"status"`
	StartTimeMs *int64     `json:"start_time_ms"`
	TotalTimeMs int64      `json:"total_time_ms"`
	Progress    float64    `json:"progress"`
}

// InventorySnapshotData holds the material stacks and player-created item
// templates of the local inventory.
type InventorySnapshotData struct {
	Stacks    []StackData        `json:"stacks,omitempty"`
	Templates []ItemTemplateData `json:"templates,omitempty"`
}

// StackData is one persisted inventory stack.
type StackData struct {
	ID       string `json:"id"`
	Kind     string `json:"kind"`
	Quantity int    `json:"quantity"`
}

// ItemTemplateData is a persisted item template.
type ItemTemplateData struct {
	Kind          string `json:"kind"`
	Name          string `json:"name"`
	Description   string `json:"description,omitempty"`
	Icon          string `json:"icon,omitempty"`
	Category      string `json:"category,omitempty"`
	MaxStack      int    `json:"max_stack,omitempty"`
	RecipeID      string `json:"recipe_id,omitempty"`
	Profession    string `json:"profession,omitempty"`
	RequiredLevel int    `json:"required_level,omitempty"`
}

// Snapshot represents a point-in-time capture of crafting state.
type Snapshot struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	Data      SnapshotData
}

// SnapshotRepo manages crafting state snapshots.
type SnapshotRepo interface {
	// Save stores a new snapshot.
	Save(ctx context.Context, snap *Snapshot) error

	// Latest returns the most recent snapshot, or nil if none exist.
	Latest(ctx context.Context) (*Snapshot, error)

	// Prune deletes all but the N most recent snapshots.
	Prune(ctx context.Context, keep int) error
}

// CraftEventData captures one notification for the crafting journal.
type CraftEventData struct {
	Kind       string
	Message    string
	Timestamp  time.Time
	Profession string
	RecipeID   string
	JobID      string
	ItemKind   string
	Quantity   int
}

// CraftEventRecord is a journal entry read back from the store.
type CraftEventRecord struct {
	CraftEventData
	Sequence int64
}

// EventRepo provides append and query access to the crafting journal.
type EventRepo interface {
	// AppendCraftEvent records a crafting notification.
	AppendCraftEvent(ctx context.Context, data CraftEventData) error

	// QueryCraftEvents returns journal entries, newest first.
	QueryCraftEvents(ctx context.Context, opts QueryOpts) ([]CraftEventRecord, error)

	// CraftEventCounts returns entry counts grouped by kind and the total.
	CraftEventCounts(ctx context.Context) (map[string]int, int, error)

	// LatestSequence returns the highest sequence number assigned so far.
	LatestSequence(ctx context.Context) (int64, error)
}
