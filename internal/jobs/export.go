package jobs

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/DavideLicci/MindGarden/internal/model"
)

// Export formats.
const (
	FormatJSON = "json"
	FormatZIP  = "zip"
)

// Export is everything stored about one user.
type Export struct {
	ExportedAt time.Time              `json:"exportedAt"`
	User       *model.User            `json:"user"`
	Garden     *model.Garden          `json:"garden"`
	Settings   *model.Settings        `json:"settings"`
	CheckIns   []*model.CheckIn       `json:"checkins"`
	Plants     []*model.PlantInstance `json:"plants"`
	Insights   []*model.Insight       `json:"insights"`
}

func (w *Worker) collect(ctx context.Context, userID int64) (*Export, error) {
	s := w.store
	out := &Export{ExportedAt: w.now().UTC()}
	var err error
	if out.User, err = s.Users().Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	if out.Garden, err = s.Gardens().GetByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("load garden: %w", err)
	}
	if out.Settings, err = s.Settings().Get(ctx, userID); err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}
	if out.CheckIns, err = s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: userID}); err != nil {
		return nil, fmt.Errorf("load checkins: %w", err)
	}
	if out.Plants, err = s.Plants().ListByUser(ctx, userID); err != nil {
		return nil, fmt.Errorf("load plants: %w", err)
	}
	if out.Insights, err = s.Insights().List(ctx, userID, 0); err != nil {
		return nil, fmt.Errorf("load insights: %w", err)
	}
	return out, nil
}

// export writes <ExportDir>/<user>/<job>.<format> and returns its path.
func (w *Worker) export(ctx context.Context, j *model.Job) (string, error) {
	data, err := w.collect(ctx, j.UserID)
	if err != nil {
		return "", err
	}
	format := j.Format
	if format == "" {
		format = FormatJSON
	}
	dir := w.userExportDir(j.UserID)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, j.ID+"."+format)

	var write func(io.Writer, *Export) error
	switch format {
	case FormatJSON:
		write = writeJSON
	case FormatZIP:
		write = writeZIP
	default:
		return "", fmt.Errorf("unknown export format %q", format)
	}
	if err := writeFileAtomic(path, func(f io.Writer) error { return write(f, data) }); err != nil {
		return "", err
	}
	return path, nil
}

func (w *Worker) userExportDir(userID int64) string {
	return filepath.Join(w.cfg.ExportDir, strconv.FormatInt(userID, 10))
}

func writeJSON(out io.Writer, data *Export) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// writeZIP stores one JSON document per collection.
func writeZIP(out io.Writer, data *Export) error {
	zw := zip.NewWriter(out)
	entries := []struct {
		name string
		v    any
	}{
		{"profile.json", struct {
			ExportedAt time.Time       `json:"exportedAt"`
			User       *model.User     `json:"user"`
			Garden     *model.Garden   `json:"garden"`
			Settings   *model.Settings `json:"settings"`
		}{data.ExportedAt, data.User, data.Garden, data.Settings}},
		{"checkins.json", data.CheckIns},
		{"plants.json", data.Plants},
		{"insights.json", data.Insights},
	}
	for _, e := range entries {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: e.name, Method: zip.Deflate, Modified: data.ExportedAt})
		if err != nil {
			return fmt.Errorf("zip %s: %w", e.name, err)
		}
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		if err := enc.Encode(e.v); err != nil {
			return fmt.Errorf("zip %s: %w", e.name, err)
		}
	}
	return zw.Close()
}

func writeFileAtomic(path string, fill func(io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".export-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := fill(tmp); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close export: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("publish export: %w", err)
	}
	return nil
}
