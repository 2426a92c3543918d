// Package storetest is a compliance suite every store.Store backend runs.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/DavideLicci/MindGarden/internal/model"
	"github.com/DavideLicci/MindGarden/internal/store"
)

// Run exercises the store contract. makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	t.Run("UsersAndGardens", func(t *testing.T) { testUsers(t, makeStore(t)) })
	t.Run("CheckInRecord", func(t *testing.T) { testCheckIns(t, makeStore(t)) })
	t.Run("Insights", func(t *testing.T) { testInsights(t, makeStore(t)) })
	t.Run("Settings", func(t *testing.T) { testSettings(t, makeStore(t)) })
	t.Run("Jobs", func(t *testing.T) { testJobs(t, makeStore(t)) })
	t.Run("Purge", func(t *testing.T) { testPurge(t, makeStore(t)) })
}

func register(t *testing.T, s store.Store) *model.User {
	t.Helper()
	email := "u-" + uuid.NewString() + "@example.test"
	u, err := s.Users().Register(context.Background(), email, "hash")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return u
}

func strp(s string) *string { return &s }

func record(t *testing.T, s store.Store, userID int64, text string, sentiment, health float64) *model.CheckInRecord {
	t.Helper()
	rec := &model.CheckInRecord{
		CheckIn: &model.CheckIn{
			UserID:         userID,
			Text:           strp(text),
			AudioObjectKey: strp("audio/" + text + ".wav"),
			EmotionLabel:   "neutrale",
			SentimentScore: sentiment,
			Tags:           []string{"t1"},
		},
		Plant: &model.PlantInstance{
			Archetype: "neutrale",
			Params:    model.PlantParams{Color: "#8B4513", Size: 0.75, Shape: "basic", GrowthRate: 1},
			Position:  model.Position{X: 1.5, Z: -2.25},
			Health:    model.DefaultPlantHealth,
		},
		GardenHealth: health,
	}
	if err := s.CheckIns().Record(context.Background(), rec); err != nil {
		t.Fatalf("Record: %v", err)
	}
	return rec
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := register(t, s)
	if u.ID == 0 || u.CreatedAt.IsZero() {
		t.Fatalf("Register: missing id or timestamp: %+v", u)
	}

	if got, err := s.Users().Get(ctx, u.ID); err != nil || got.Email != u.Email || got.PasswordHash != "hash" {
		t.Fatalf("Get: got=%+v err=%v", got, err)
	}
	if got, err := s.Users().GetByEmail(ctx, u.Email); err != nil || got.ID != u.ID {
		t.Fatalf("GetByEmail: got=%+v err=%v", got, err)
	}
	if _, err := s.Users().Register(ctx, u.Email, "other"); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate Register: expected ErrConflict, got %v", err)
	}
	if _, err := s.Users().Get(ctx, u.ID+100000); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing: expected ErrNotFound, got %v", err)
	}

	g, err := s.Gardens().GetByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetGarden: %v", err)
	}
	if g.ID == "" || g.Health != model.DefaultGardenHealth {
		t.Fatalf("unexpected new garden: %+v", g)
	}

	st, err := s.Settings().Get(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetSettings: %v", err)
	}
	if st.ProcessingMode != "cloud" || st.AudioRetentionDays != 30 || st.ShareAnonymized {
		t.Fatalf("unexpected default settings: %+v", st)
	}
}

func testCheckIns(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := register(t, s)

	first := record(t, s, u.ID, "one", -1, 0.4)
	if first.CheckIn.ID == 0 || first.CheckIn.Status != model.CheckInStatusComplete {
		t.Fatalf("Record: check-in not filled: %+v", first.CheckIn)
	}
	if first.Plant.ID == "" || first.Plant.CheckInID == nil || *first.Plant.CheckInID != first.CheckIn.ID {
		t.Fatalf("Record: plant not linked: %+v", first.Plant)
	}
	second := record(t, s, u.ID, "two", 0, 0.4)

	g, err := s.Gardens().GetByUser(ctx, u.ID)
	if err != nil || g.Health != 0.4 {
		t.Fatalf("garden health after record: got=%+v err=%v", g, err)
	}

	got, err := s.CheckIns().Get(ctx, first.CheckIn.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Text == nil || *got.Text != "one" || got.STTText != nil || len(got.Tags) != 1 || got.Tags[0] != "t1" {
		t.Fatalf("Get: unexpected check-in: %+v", got)
	}

	list, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: u.ID})
	if err != nil || len(list) != 2 {
		t.Fatalf("List: n=%d err=%v", len(list), err)
	}
	if list[0].ID != second.CheckIn.ID {
		t.Fatalf("List: expected newest first, got %d", list[0].ID)
	}
	if lim, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: u.ID, Limit: 1}); err != nil || len(lim) != 1 {
		t.Fatalf("List limit: n=%d err=%v", len(lim), err)
	}
	future := time.Now().Add(time.Hour)
	if none, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: u.ID, Since: &future}); err != nil || len(none) != 0 {
		t.Fatalf("List since: n=%d err=%v", len(none), err)
	}

	p, err := s.Plants().Get(ctx, first.Plant.ID)
	if err != nil {
		t.Fatalf("GetPlant: %v", err)
	}
	if p.Params.Color != "#8B4513" || p.Position.X != 1.5 || p.Position.Z != -2.25 || p.StyleSkin != model.DefaultStyleSkin {
		t.Fatalf("GetPlant: unexpected plant: %+v", p)
	}
	if err := s.Plants().UpdateCare(ctx, p.ID, 0.6, 0.1); err != nil {
		t.Fatalf("UpdateCare: %v", err)
	}
	if err := s.Plants().UpdateCare(ctx, uuid.NewString(), 0.6, 0.1); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("UpdateCare missing: expected ErrNotFound, got %v", err)
	}

	if n, err := s.CheckIns().ClearAudio(ctx, u.ID, time.Now().Add(time.Minute)); err != nil || n != 2 {
		t.Fatalf("ClearAudio: n=%d err=%v", n, err)
	}
	if got, _ := s.CheckIns().Get(ctx, first.CheckIn.ID); got.AudioObjectKey != nil {
		t.Fatalf("ClearAudio: key still set")
	}

	if err := s.CheckIns().Delete(ctx, u.ID, first.CheckIn.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.CheckIns().Get(ctx, first.CheckIn.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get deleted: expected ErrNotFound, got %v", err)
	}
	if err := s.CheckIns().Delete(ctx, u.ID, first.CheckIn.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Delete twice: expected ErrNotFound, got %v", err)
	}
	plants, err := s.Plants().ListByUser(ctx, u.ID)
	if err != nil || len(plants) != 2 {
		t.Fatalf("ListPlants: n=%d err=%v", len(plants), err)
	}
	if plants[0].CheckInID != nil {
		t.Fatalf("plant of deleted check-in should be detached: %+v", plants[0])
	}
	if plants[0].Health != 0.6 || plants[0].GrowthProgress != 0.1 {
		t.Fatalf("care not persisted: %+v", plants[0])
	}
}

func testInsights(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := register(t, s)
	batch := []model.Insight{
		{UserID: u.ID, Text: "a", InsightType: model.InsightTrendPositive, SourceCheckInIDs: []int64{1, 2}},
		{UserID: u.ID, Text: "b", InsightType: model.InsightGardenKeeper},
	}
	if err := s.Insights().CreateBatch(ctx, batch); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if batch[0].ID == "" || batch[0].CreatedAt.IsZero() {
		t.Fatalf("CreateBatch: ids not assigned")
	}
	list, err := s.Insights().List(ctx, u.ID, 10)
	if err != nil || len(list) != 2 {
		t.Fatalf("List: n=%d err=%v", len(list), err)
	}
	for _, in := range list {
		if in.Text == "a" && len(in.SourceCheckInIDs) != 2 {
			t.Fatalf("sources not persisted: %+v", in)
		}
	}
	if one, err := s.Insights().List(ctx, u.ID, 1); err != nil || len(one) != 1 {
		t.Fatalf("List limit: n=%d err=%v", len(one), err)
	}
}

func testSettings(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := register(t, s)
	want := &model.Settings{UserID: u.ID, ProcessingMode: "local", AudioRetentionDays: 7, ShareAnonymized: true}
	if err := s.Settings().Upsert(ctx, want); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	got, err := s.Settings().Get(ctx, u.ID)
	if err != nil || *got != *want {
		t.Fatalf("Get after upsert: got=%+v err=%v", got, err)
	}
	all, err := s.Settings().List(ctx)
	if err != nil || len(all) == 0 {
		t.Fatalf("List: n=%d err=%v", len(all), err)
	}
}

func testJobs(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := register(t, s)

	j := &model.Job{UserID: u.ID, Kind: model.JobExport, Format: "json"}
	if err := s.Jobs().Enqueue(ctx, j); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if open, err := s.Jobs().HasOpen(ctx, u.ID, model.JobExport); err != nil || !open {
		t.Fatalf("HasOpen: open=%v err=%v", open, err)
	}

	now := time.Now().Add(time.Second)
	leased, err := s.Jobs().Lease(ctx, now, time.Minute, 1000)
	if err != nil {
		t.Fatalf("Lease: %v", err)
	}
	var mine *model.Job
	for _, l := range leased {
		if l.ID == j.ID {
			mine = l
		}
	}
	if mine == nil || mine.Status != model.JobRunning {
		t.Fatalf("Lease: job not leased: %+v", leased)
	}
	again, err := s.Jobs().Lease(ctx, now, time.Minute, 1000)
	if err != nil {
		t.Fatalf("Lease again: %v", err)
	}
	for _, l := range again {
		if l.ID == j.ID {
			t.Fatalf("Lease: job leased twice within lease window")
		}
	}

	if err := s.Jobs().MarkFailed(ctx, j.ID, "boom", now, false); err != nil {
		t.Fatalf("MarkFailed: %v", err)
	}
	got, err := s.Jobs().Get(ctx, j.ID)
	if err != nil || got.Status != model.JobPending || got.Attempts != 1 || got.Error != "boom" {
		t.Fatalf("after MarkFailed: got=%+v err=%v", got, err)
	}

	if err := s.Jobs().MarkDone(ctx, j.ID, "/tmp/x.json"); err != nil {
		t.Fatalf("MarkDone: %v", err)
	}
	got, err = s.Jobs().Get(ctx, j.ID)
	if err != nil || got.Status != model.JobDone || got.ResultPath != "/tmp/x.json" || got.CompletedAt == nil {
		t.Fatalf("after MarkDone: got=%+v err=%v", got, err)
	}
	if open, err := s.Jobs().HasOpen(ctx, u.ID, model.JobExport); err != nil || open {
		t.Fatalf("HasOpen after done: open=%v err=%v", open, err)
	}

	f := &model.Job{UserID: u.ID, Kind: model.JobDelete}
	if err := s.Jobs().Enqueue(ctx, f); err != nil {
		t.Fatalf("Enqueue: %v", err)
	}
	if err := s.Jobs().MarkFailed(ctx, f.ID, "fatal", now, true); err != nil {
		t.Fatalf("MarkFailed final: %v", err)
	}
	if got, err := s.Jobs().Get(ctx, f.ID); err != nil || got.Status != model.JobFailed {
		t.Fatalf("after final failure: got=%+v err=%v", got, err)
	}
	if _, err := s.Jobs().Get(ctx, uuid.NewString()); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing job: expected ErrNotFound, got %v", err)
	}
}

func testPurge(t *testing.T, s store.Store) {
	ctx := context.Background()
	u := register(t, s)
	other := register(t, s)
	record(t, s, u.ID, "mine", 1, 0.6)
	record(t, s, other.ID, "theirs", 1, 0.6)
	if err := s.Insights().CreateBatch(ctx, []model.Insight{{UserID: u.ID, Text: "x", InsightType: model.InsightGardenKeeper}}); err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	keep := &model.Job{UserID: u.ID, Kind: model.JobDelete}
	old := &model.Job{UserID: u.ID, Kind: model.JobExport}
	for _, j := range []*model.Job{keep, old} {
		if err := s.Jobs().Enqueue(ctx, j); err != nil {
			t.Fatalf("Enqueue: %v", err)
		}
	}

	if err := s.Users().Purge(ctx, u.ID, keep.ID); err != nil {
		t.Fatalf("Purge: %v", err)
	}

	if _, err := s.Users().Get(ctx, u.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("user survived purge: %v", err)
	}
	if _, err := s.Gardens().GetByUser(ctx, u.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("garden survived purge: %v", err)
	}
	if list, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: u.ID}); err != nil || len(list) != 0 {
		t.Fatalf("check-ins survived purge: n=%d err=%v", len(list), err)
	}
	if plants, err := s.Plants().ListByUser(ctx, u.ID); err != nil || len(plants) != 0 {
		t.Fatalf("plants survived purge: n=%d err=%v", len(plants), err)
	}
	if _, err := s.Jobs().Get(ctx, keep.ID); err != nil {
		t.Fatalf("kept job was purged: %v", err)
	}
	if _, err := s.Jobs().Get(ctx, old.ID); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("old job survived purge: %v", err)
	}
	if list, err := s.CheckIns().List(ctx, model.ListCheckInsRequest{UserID: other.ID}); err != nil || len(list) != 1 {
		t.Fatalf("other user's data touched: n=%d err=%v", len(list), err)
	}
}
