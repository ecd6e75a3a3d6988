package cmd

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/craftq/internal/config"
	"github.com/abhisek/craftq/internal/crafting"
	"github.com/abhisek/craftq/internal/inventory"
	"github.com/abhisek/craftq/internal/logger"
	"github.com/abhisek/craftq/internal/notify"
	"github.com/abhisek/craftq/internal/recipes"
	"github.com/abhisek/craftq/internal/store"
)

// session is the state a command works against: the database, the
// restored inventory and the crafting engine.
type session struct {
	cfg   config.Config
	log   *logger.Logger
	store *store.Store
	items *inventory.ItemCatalog
	inv   *inventory.Inventory
	eng   *crafting.Engine
}

// sessionOptions tweaks how a session is opened.
type sessionOptions struct {
	// Sinks receive notifications in addition to the journal and log.
	Sinks []notify.Sink

	// LogToFile sends log output to a file instead of stderr.
	LogToFile bool
}

// openSession loads configuration and the latest snapshot, then brings
// the engine up to the current time so jobs that finished while the
// program was not running are finalized.
func openSession(cmd *cobra.Command, opts sessionOptions) (*session, error) {
	ctx := cmd.Context()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	var outputs []string
	if opts.LogToFile {
		logFile := cfg.LogFile
		if logFile == "" {
			logFile = filepath.Join(filepath.Dir(dbPath), "craftq.log")
		}
		outputs = append(outputs, logFile)
	}
	log, err := logger.New(cfg.LogMode, outputs...)
	if err != nil {
		return nil, fmt.Errorf("create logger: %w", err)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	latest, err := st.SnapshotRepo().Latest(ctx)
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap *store.SnapshotData
	if latest != nil {
		snap = &latest.Data
	}

	items, err := inventory.BuiltinItems()
	if err != nil {
		st.Close()
		return nil, err
	}
	var invData *store.InventorySnapshotData
	if snap != nil {
		invData = snap.Inventory
	}
	inv := inventory.Load(items, invData)

	sink := notify.Fanout{notify.NewJournalSink(st.EventRepo()), notify.NewLogSink(log)}
	sink = append(sink, opts.Sinks...)

	now := time.Now()
	eng := crafting.NewEngine(crafting.Config{
		TickInterval:      cfg.TickInterval,
		PromotionDebounce: cfg.PromotionDebounce,
		DefaultCraftTime:  cfg.DefaultCraftTime,
	}, crafting.Deps{
		Ledger:    inv,
		Items:     items,
		Inventory: inv,
		Sink:      sink,
		Log:       log.With("component", "crafting"),
		Pack:      recipes.Builtin(),
	}, snap, now)

	if r := eng.LoadReport(); r.Purged > 0 || r.Demoted > 0 || r.Dropped > 0 {
		log.Warn("recovered craft queue", "purged", r.Purged, "demoted", r.Demoted, "dropped", r.Dropped)
	}
	eng.Tick(ctx, now)

	return &session{cfg: cfg, log: log, store: st, items: items, inv: inv, eng: eng}, nil
}

// save writes a snapshot of the engine and inventory and prunes old ones.
// It runs after an interrupt too, so cancellation of ctx is ignored.
func (s *session) save(ctx context.Context) error {
	ctx = context.WithoutCancel(ctx)
	data := s.eng.SnapshotData()
	data.Inventory = s.inv.SnapshotData()

	seq, err := s.store.EventRepo().LatestSequence(ctx)
	if err != nil {
		return fmt.Errorf("read sequence: %w", err)
	}
	repo := s.store.SnapshotRepo()
	if err := repo.Save(ctx, &store.Snapshot{Sequence: seq, Timestamp: time.Now(), Data: *data}); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	if err := repo.Prune(ctx, s.cfg.SnapshotKeep); err != nil {
		s.log.Error("prune snapshots", "error", err)
	}
	return nil
}

func (s *session) close() {
	s.log.Sync()
	s.store.Close()
}

// withSession opens a session, runs fn, and saves the result.
func withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	s, err := openSession(cmd, sessionOptions{})
	if err != nil {
		return err
	}
	defer s.close()

	ctx := cmd.Context()
	runErr := fn(ctx, s)
	if err := s.save(context.WithoutCancel(ctx)); err != nil {
		if runErr != nil {
			return fmt.Errorf("%w (and %v)", runErr, err)
		}
		return err
	}
	return runErr
}
