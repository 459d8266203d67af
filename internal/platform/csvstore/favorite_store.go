package csvstore

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/promptchain/internal/domain"
	"github.com/phrazzld/promptchain/internal/platform/logger"
	"github.com/phrazzld/promptchain/internal/store"
)

// Header is the column layout of the favorites file.
var Header = []string{
	"ID",
	"Title",
	"Character",
	"Prompt_Primary",
	"Prompt_Secondary",
	"Prompt_Video",
	"Created_At",
}

const timeLayout = time.RFC3339Nano

// Files written by the earlier service use timestamp IDs such as
// "20250101120000123456" and zone-less ISO dates in local time. Rows in that
// form are read with a UUID derived from the old ID and are rewritten in the
// current layout on the next save.
const legacyTimeLayout = "2006-01-02T15:04:05.999999"

var legacyIDNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("urn:promptchain:favorites:legacy-id"))

// FavoriteStore persists favorites in a CSV file.
type FavoriteStore struct {
	path   string
	logger *slog.Logger
	mu     sync.Mutex
}

var _ store.FavoriteStore = (*FavoriteStore)(nil)

// NewFavoriteStore opens the CSV store at path, creating the file with its
// header row when it does not exist yet.
func NewFavoriteStore(path string, log *slog.Logger) (*FavoriteStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: csv path is empty", store.ErrStorage)
	}
	if log == nil {
		log = slog.Default()
	}
	s := &FavoriteStore{
		path:   path,
		logger: log.With(slog.String("component", "favorites_csv")),
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := s.save(nil); err != nil {
			return nil, err
		}
		s.logger.Info("created favorites file", slog.String("path", path))
	} else if err != nil {
		return nil, store.StorageFailure("open", "cannot stat favorites file", err)
	}
	return s, nil
}

// Path returns the location of the backing file.
func (s *FavoriteStore) Path() string { return s.path }

// Create implements store.FavoriteStore.Create.
func (s *FavoriteStore) Create(ctx context.Context, f *domain.Favorite) error {
	log := logger.FromContextOrDefault(ctx, s.logger)
	if err := f.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	for _, existing := range all {
		if existing.ID == f.ID {
			return fmt.Errorf("%w: favorite %s", store.ErrDuplicate, f.ID)
		}
	}

	copied := *f
	if err := s.save(append(all, &copied)); err != nil {
		return err
	}
	log.Info("favorite saved", slog.String("favorite_id", f.ID.String()))
	return nil
}

// GetByID implements store.FavoriteStore.GetByID.
func (s *FavoriteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	if i := indexOf(all, id); i >= 0 {
		return all[i], nil
	}
	return nil, store.ErrFavoriteNotFound
}

// List implements store.FavoriteStore.List.
func (s *FavoriteStore) List(ctx context.Context) ([]*domain.Favorite, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].CreatedAt.Before(all[j].CreatedAt)
	})
	return all, nil
}

// Update implements store.FavoriteStore.Update.
func (s *FavoriteStore) Update(ctx context.Context, id uuid.UUID, fn store.FavoriteMutator) (*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(all, id)
	if i < 0 {
		return nil, store.ErrFavoriteNotFound
	}

	updated := *all[i]
	if err := fn(&updated); err != nil {
		return nil, err
	}
	updated.ID = id
	if err := updated.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}
	all[i] = &updated

	if err := s.save(all); err != nil {
		return nil, err
	}
	log.Info("favorite updated", slog.String("favorite_id", id.String()))
	result := updated
	return &result, nil
}

// Delete implements store.FavoriteStore.Delete.
func (s *FavoriteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(all, id)
	if i < 0 {
		return store.ErrFavoriteNotFound
	}
	all = append(all[:i], all[i+1:]...)

	if err := s.save(all); err != nil {
		return err
	}
	log.Info("favorite deleted", slog.String("favorite_id", id.String()))
	return nil
}

func indexOf(all []*domain.Favorite, id uuid.UUID) int {
	for i, f := range all {
		if f.ID == id {
			return i
		}
	}
	return -1
}

// load reads every well-formed row. Rows that cannot be parsed or decoded are
// skipped with a warning so one damaged line does not hide the rest of the
// file. Skipped rows are dropped by the next rewrite.
func (s *FavoriteStore) load(ctx context.Context) ([]*domain.Favorite, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	file, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, store.StorageFailure("read", "cannot open favorites file", err)
	}
	defer func() { _ = file.Close() }()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	var (
		out  []*domain.Favorite
		line int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var parseErr *csv.ParseError
			if !errors.As(err, &parseErr) {
				return nil, store.StorageFailure("read", "malformed csv", err)
			}
			log.Warn("skipping malformed favorites row",
				slog.Int("line", parseErr.StartLine),
				slog.String("error", err.Error()))
			continue
		}
		if line == 1 && len(record) > 0 && record[0] == Header[0] {
			continue
		}
		f, err := decodeRecord(record)
		if err != nil {
			log.Warn("skipping unreadable favorites row",
				slog.Int("line", line),
				slog.String("error", err.Error()))
			continue
		}
		out = append(out, f)
	}
	return out, nil
}

func decodeRecord(record []string) (*domain.Favorite, error) {
	if len(record) != len(Header) {
		return nil, fmt.Errorf("expected %d columns, got %d", len(Header), len(record))
	}
	id, err := parseID(record[0])
	if err != nil {
		return nil, err
	}
	createdAt, err := parseCreatedAt(record[6])
	if err != nil {
		return nil, err
	}
	return &domain.Favorite{
		ID:              id,
		Title:           record[1],
		Character:       record[2],
		PromptPrimary:   record[3],
		PromptSecondary: record[4],
		PromptVideo:     record[5],
		CreatedAt:       createdAt.UTC(),
	}, nil
}

func parseID(raw string) (uuid.UUID, error) {
	if id, err := uuid.Parse(raw); err == nil {
		return id, nil
	}
	if raw == "" {
		return uuid.Nil, errors.New("invalid id: empty")
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return uuid.Nil, fmt.Errorf("invalid id: %q", raw)
		}
	}
	return uuid.NewSHA1(legacyIDNamespace, []byte(raw)), nil
}

func parseCreatedAt(raw string) (time.Time, error) {
	if t, err := time.Parse(timeLayout, raw); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation(legacyTimeLayout, raw, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid created_at: %w", err)
	}
	return t, nil
}

func encodeRecord(f *domain.Favorite) []string {
	return []string{
		f.ID.String(),
		f.Title,
		f.Character,
		f.PromptPrimary,
		f.PromptSecondary,
		f.PromptVideo,
		f.CreatedAt.UTC().Format(timeLayout),
	}
}

// save rewrites the whole file atomically via a temp file in the same directory.
func (s *FavoriteStore) save(all []*domain.Favorite) error {
	wrap := func(msg string, err error) error {
		return store.StorageFailure("write", msg, err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return wrap("cannot create directory", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return wrap("cannot create temp file", err)
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	w := csv.NewWriter(tmp)
	if err := w.Write(Header); err != nil {
		cleanup()
		return wrap("cannot write header", err)
	}
	for _, f := range all {
		if err := w.Write(encodeRecord(f)); err != nil {
			cleanup()
			return wrap("cannot write row", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		cleanup()
		return wrap("cannot flush rows", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return wrap("cannot sync temp file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return wrap("cannot close temp file", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return wrap("cannot replace favorites file", err)
	}
	return nil
}
