package services

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"luckywheel/internal/models"
	"luckywheel/internal/wheel"
)

type fakeTimer struct {
	fire    func()
	stopped bool
}

func (f *fakeTimer) Stop() bool {
	f.stopped = true
	return true
}

type winCall struct {
	participantName, participantID, prizeName, prizeID, gameType string
}

type harness struct {
	svc    *LotteryService
	timers []*fakeTimer
	wins   []winCall
}

// fireLast fires the most recently scheduled spin timer.
func (h *harness) fireLast(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, h.timers)
	h.timers[len(h.timers)-1].fire()
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	h := &harness{}
	svc, err := NewLotteryService(DefaultSettings(),
		WithSource(rand.New(rand.NewPCG(7, 11))),
		WithClock(func() time.Time { return time.Date(2025, 1, 28, 20, 0, 0, 0, time.UTC) }),
		WithWinnerListener(func(participantName, participantID, prizeName, prizeID, gameType string) {
			h.wins = append(h.wins, winCall{participantName, participantID, prizeName, prizeID, gameType})
		}),
	)
	require.NoError(t, err)

	svc.afterFunc = func(_ time.Duration, f func()) timer {
		ft := &fakeTimer{fire: f}
		h.timers = append(h.timers, ft)
		return ft
	}
	h.svc = svc
	return h
}

// spinAndReveal runs a full spin for participantID and returns the draw.
func (h *harness) spinAndReveal(t *testing.T, participantID string) Draw {
	t.Helper()

	draw, err := h.svc.Spin(participantID)
	require.NoError(t, err)
	h.fireLast(t)
	require.Equal(t, StateRevealed, h.svc.Status().State)
	return draw
}

func participantIDs(ps []models.Participant) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr bool
	}{
		{"defaults", func(*Settings) {}, false},
		{"zero duration", func(s *Settings) { s.SpinDuration = 0 }, true},
		{"min above max", func(s *Settings) { s.MinFullSpins = 20 }, true},
		{"zero min", func(s *Settings) { s.MinFullSpins = 0 }, true},
		{"blank game type", func(s *Settings) { s.GameType = "  " }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSettings()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidSettings)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	_, err := NewLotteryService(Settings{})
	assert.ErrorIs(t, err, ErrInvalidSettings)
}

func TestLotteryService_Roster(t *testing.T) {
	h := newHarness(t)
	svc := h.svc

	_, err := svc.AddParticipant("", "   ")
	assert.ErrorIs(t, err, ErrEmptyName)

	alice, err := svc.AddParticipant("", "  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", alice.Name)
	assert.NotEmpty(t, alice.ID)

	bob, err := svc.AddParticipant("002", "Bob")
	require.NoError(t, err)
	assert.Equal(t, "002", bob.ID)

	_, err = svc.AddParticipant("002", "Bobby")
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, []string{alice.ID, "002"}, participantIDs(svc.GetParticipants()))

	require.NoError(t, svc.RemoveParticipant(alice.ID))
	assert.ErrorIs(t, svc.RemoveParticipant(alice.ID), ErrParticipantNotFound)
	assert.Equal(t, []string{"002"}, participantIDs(svc.GetParticipants()))
}

func TestLotteryService_Prizes(t *testing.T) {
	h := newHarness(t)
	svc := h.svc

	_, err := svc.AddPrize("", "", "#FFD700", 1)
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = svc.AddPrize("", "Gold", "#FFD700", 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
	_, err = svc.AddPrize("", "Gold", "gold", 1)
	assert.ErrorIs(t, err, ErrInvalidColor)

	gold, err := svc.AddPrize("1", "Gold", "#FFD700", 1)
	require.NoError(t, err)
	assert.Equal(t, 0, gold.WonCount)

	cash, err := svc.AddPrize("", "200K", "", 3)
	require.NoError(t, err)
	assert.Equal(t, PresetColors[1], cash.Color)

	_, err = svc.AddPrize("1", "Gold again", "#FFD700", 1)
	assert.ErrorIs(t, err, ErrDuplicateID)

	assert.Len(t, svc.GetSegments(), 4)

	require.NoError(t, svc.RemovePrize("1"))
	assert.ErrorIs(t, svc.RemovePrize("1"), ErrPrizeNotFound)
	assert.Len(t, svc.GetSegments(), 3)
}

func TestLotteryService_SpinPreconditions(t *testing.T) {
	h := newHarness(t)
	svc := h.svc

	_, err := svc.Spin("nobody")
	assert.ErrorIs(t, err, ErrParticipantNotFound)

	_, err = svc.AddParticipant("1", "Alice")
	require.NoError(t, err)
	_, err = svc.Spin("1")
	assert.ErrorIs(t, err, ErrNoSegments)
	assert.False(t, svc.Snapshot().CanSpin)

	_, err = svc.AddPrize("p", "Gold", "#FFD700", 2)
	require.NoError(t, err)
	assert.True(t, svc.Snapshot().CanSpin)

	_, err = svc.Confirm()
	assert.ErrorIs(t, err, ErrNothingToConfirm)
	assert.ErrorIs(t, svc.Discard(), ErrNothingToConfirm)
}

func TestLotteryService_SpinLocksControls(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}},
		[]models.Prize{{ID: "p", Name: "Gold", Color: "#FFD700", Quantity: 2}},
	))

	_, err := svc.Spin("1")
	require.NoError(t, err)
	assert.Equal(t, StateSpinning, svc.Status().State)
	assert.False(t, svc.Snapshot().CanSpin)

	_, err = svc.Spin("2")
	assert.ErrorIs(t, err, ErrSpinInProgress)
	_, err = svc.AddParticipant("", "Carol")
	assert.ErrorIs(t, err, ErrSpinInProgress)
	assert.ErrorIs(t, svc.RemoveParticipant("2"), ErrSpinInProgress)
	_, err = svc.AddPrize("", "Silver", "", 1)
	assert.ErrorIs(t, err, ErrSpinInProgress)
	assert.ErrorIs(t, svc.RemovePrize("p"), ErrSpinInProgress)
	assert.ErrorIs(t, svc.Reset(), ErrSpinInProgress)
	_, err = svc.Confirm()
	assert.ErrorIs(t, err, ErrNothingToConfirm)

	h.fireLast(t)
	assert.Equal(t, StateRevealed, svc.Status().State)
	_, err = svc.AddParticipant("", "Carol")
	assert.NoError(t, err)
}

func TestLotteryService_RevealMatchesDraw(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{
			{ID: "a", Name: "Gold", Quantity: 1},
			{ID: "b", Name: "500K", Quantity: 5},
			{ID: "c", Name: "200K", Quantity: 17},
		},
	))

	for range 30 {
		segments := svc.GetSegments()
		before := svc.Rotation()

		draw := h.spinAndReveal(t, "1")

		assert.Equal(t, segments[draw.Spin.Index], draw.Segment)
		assert.Equal(t, len(segments), draw.Spin.Count)
		assert.Equal(t, draw.Spin.Index, wheel.SegmentUnderPointer(draw.Spin.To, draw.Spin.Count))
		assert.Greater(t, draw.Spin.To, before)
		assert.Equal(t, draw.Spin.To, svc.Rotation())
		assert.Equal(t, DefaultSpinDuration.Milliseconds(), draw.DurationMs)
		assert.Equal(t, draw.StartedAt.Add(DefaultSpinDuration), draw.RevealAt)

		status := svc.Status()
		require.NotNil(t, status.Draw)
		assert.Equal(t, draw, *status.Draw)

		// discard so the prize pool stays the same across iterations
		require.NoError(t, svc.Discard())
		assert.Equal(t, StateDiscarded, svc.Status().State)
	}
	assert.Equal(t, int64(30), svc.Stats().Discarded)
	assert.Empty(t, svc.GetHistory())
}

func TestLotteryService_SinglePrizeScenario(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}, {ID: "3", Name: "Carol"}},
		[]models.Prize{{ID: "gold", Name: "Gold", Color: "#FFD700", Quantity: 1}},
	))

	draw := h.spinAndReveal(t, "2")
	assert.Equal(t, "gold", draw.Segment.PrizeID)

	record, err := svc.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "2", record.ParticipantID)
	assert.Equal(t, "Bob", record.ParticipantName)
	assert.Equal(t, "gold", record.PrizeID)
	assert.Equal(t, "Gold", record.PrizeName)
	assert.Equal(t, DefaultGameType, record.GameType)
	assert.Equal(t, time.Date(2025, 1, 28, 20, 0, 0, 0, time.UTC), record.Timestamp)

	assert.Empty(t, svc.GetPrizes())
	assert.Empty(t, svc.GetSegments())
	assert.Equal(t, []string{"1", "3"}, participantIDs(svc.GetParticipants()))
	assert.Equal(t, []models.WinnerRecord{record}, svc.GetHistory())
	assert.Equal(t, []winCall{{"Bob", "2", "Gold", "gold", DefaultGameType}}, h.wins)

	status := svc.Status()
	assert.Equal(t, StateCommitted, status.State)
	require.NotNil(t, status.Record)
	assert.Equal(t, record.ID, status.Record.ID)

	_, err = svc.Spin("1")
	assert.ErrorIs(t, err, ErrNoSegments)
	assert.False(t, svc.Snapshot().CanSpin)

	_, err = svc.Confirm()
	assert.ErrorIs(t, err, ErrNothingToConfirm)
}

func TestLotteryService_TwoUnitPrize(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}, {ID: "3", Name: "Carol"}},
		[]models.Prize{{ID: "m", Name: "1 Triệu", Color: "#4ECDC4", Quantity: 2}},
	))

	h.spinAndReveal(t, "1")
	_, err := svc.Confirm()
	require.NoError(t, err)

	prizes := svc.GetPrizes()
	require.Len(t, prizes, 1)
	assert.Equal(t, 1, prizes[0].WonCount)
	assert.Len(t, svc.GetSegments(), 1)

	h.spinAndReveal(t, "3")
	_, err = svc.Confirm()
	require.NoError(t, err)

	assert.Empty(t, svc.GetPrizes())
	assert.Equal(t, []string{"2"}, participantIDs(svc.GetParticipants()))

	history := svc.GetHistory()
	require.Len(t, history, 2)
	assert.Equal(t, "3", history[0].ParticipantID, "newest record first")
	assert.Equal(t, "1", history[1].ParticipantID)
}

func TestLotteryService_Undo(t *testing.T) {
	seed := func(t *testing.T) *harness {
		h := newHarness(t)
		require.NoError(t, h.svc.Seed(
			[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}},
			[]models.Prize{{ID: "cash", Name: "500K", Color: "#45B7D1", Quantity: 3}},
		))
		return h
	}

	t.Run("unknown record", func(t *testing.T) {
		h := seed(t)
		_, err := h.svc.Undo("missing")
		assert.ErrorIs(t, err, ErrRecordNotFound)
	})

	t.Run("returns to pre-draw state", func(t *testing.T) {
		h := seed(t)
		svc := h.svc
		beforeParticipants := svc.GetParticipants()
		beforePrizes := svc.GetPrizes()

		h.spinAndReveal(t, "1")
		record, err := svc.Confirm()
		require.NoError(t, err)
		assert.Equal(t, 1, svc.GetPrizes()[0].WonCount)

		undone, err := svc.Undo(record.ID)
		require.NoError(t, err)
		assert.Equal(t, record, undone)

		assert.ElementsMatch(t, beforeParticipants, svc.GetParticipants())
		assert.Equal(t, beforePrizes, svc.GetPrizes())
		assert.Len(t, svc.GetSegments(), 3)
		assert.Empty(t, svc.GetHistory())
		assert.Nil(t, svc.Status().Record)
		assert.Equal(t, int64(1), svc.Stats().Undone)
	})

	t.Run("participant already back in roster", func(t *testing.T) {
		h := seed(t)
		svc := h.svc

		h.spinAndReveal(t, "1")
		record, err := svc.Confirm()
		require.NoError(t, err)
		_, err = svc.AddParticipant("1", "Alice")
		require.NoError(t, err)

		_, err = svc.Undo(record.ID)
		require.NoError(t, err)
		assert.Equal(t, []string{"2", "1"}, participantIDs(svc.GetParticipants()))
	})

	t.Run("rejected while spinning", func(t *testing.T) {
		h := seed(t)
		svc := h.svc

		h.spinAndReveal(t, "1")
		record, err := svc.Confirm()
		require.NoError(t, err)

		_, err = svc.Spin("2")
		require.NoError(t, err)
		_, err = svc.Undo(record.ID)
		assert.ErrorIs(t, err, ErrSpinInProgress)
	})
}

func TestLotteryService_UndoExhaustedPrize(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}, {ID: "3", Name: "Carol"}},
		[]models.Prize{{ID: "m", Name: "1 Triệu", Color: "#4ECDC4", Quantity: 2}},
	))

	h.spinAndReveal(t, "1")
	first, err := svc.Confirm()
	require.NoError(t, err)
	h.spinAndReveal(t, "2")
	second, err := svc.Confirm()
	require.NoError(t, err)
	require.Empty(t, svc.GetPrizes())

	_, err = svc.Undo(first.ID)
	require.NoError(t, err)

	prizes := svc.GetPrizes()
	require.Len(t, prizes, 1)
	assert.Equal(t, models.Prize{ID: "m", Name: "1 Triệu", Color: "#4ECDC4", Quantity: 2, WonCount: 1}, prizes[0])

	_, err = svc.Undo(second.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, svc.GetPrizes()[0].WonCount)
	assert.Len(t, svc.GetSegments(), 2)
	assert.ElementsMatch(t, []string{"1", "2", "3"}, participantIDs(svc.GetParticipants()))
}

func TestLotteryService_UndoRemovedPrize(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}, {ID: "3", Name: "Carol"}},
		[]models.Prize{{ID: "cash", Name: "500K", Color: "#45B7D1", Quantity: 5}},
	))

	h.spinAndReveal(t, "1")
	first, err := svc.Confirm()
	require.NoError(t, err)
	h.spinAndReveal(t, "2")
	_, err = svc.Confirm()
	require.NoError(t, err)

	// a manual removal keeps no metadata, so undo rebuilds the prize
	require.NoError(t, svc.RemovePrize("cash"))

	_, err = svc.Undo(first.ID)
	require.NoError(t, err)

	prizes := svc.GetPrizes()
	require.Len(t, prizes, 1)
	assert.Equal(t, models.Prize{ID: "cash", Name: "500K", Color: DefaultPrizeColor, Quantity: 2, WonCount: 1}, prizes[0])
	assert.Len(t, svc.GetSegments(), 1)
}

func TestLotteryService_StaleTimerIgnored(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{{ID: "p", Name: "Gold", Quantity: 3}},
	))

	h.spinAndReveal(t, "1")
	stale := h.timers[0]

	second, err := svc.Spin("1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), svc.Stats().Discarded, "unconfirmed draw is discarded by a new spin")

	stale.fire()
	assert.Equal(t, StateSpinning, svc.Status().State)

	h.fireLast(t)
	status := svc.Status()
	assert.Equal(t, StateRevealed, status.State)
	assert.Equal(t, second.ID, status.Draw.ID)
}

func TestLotteryService_Reset(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{{ID: "p", Name: "Gold", Quantity: 3}},
	))

	h.spinAndReveal(t, "1")
	require.Greater(t, svc.Rotation(), 0.0)

	require.NoError(t, svc.Reset())
	assert.Zero(t, svc.Rotation())
	assert.Equal(t, StateIdle, svc.Status().State)
	assert.Nil(t, svc.Status().Draw)
	assert.Len(t, svc.GetSegments(), 3)
	assert.Equal(t, int64(1), svc.Stats().Discarded)
}

func TestLotteryService_ClearHistory(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}},
		[]models.Prize{{ID: "p", Name: "Gold", Quantity: 3}},
	))

	h.spinAndReveal(t, "1")
	_, err := svc.Confirm()
	require.NoError(t, err)

	svc.ClearHistory()
	assert.Empty(t, svc.GetHistory())
	assert.Equal(t, 1, svc.GetPrizes()[0].WonCount, "clearing history does not reverse wins")
	assert.Equal(t, []string{"2"}, participantIDs(svc.GetParticipants()))
}

func TestLotteryService_UpdateSettings(t *testing.T) {
	h := newHarness(t)
	svc := h.svc

	bad := DefaultSettings()
	bad.MaxFullSpins = 1
	assert.ErrorIs(t, svc.UpdateSettings(bad), ErrInvalidSettings)

	next := DefaultSettings()
	next.GameType = "Lucky Wheel"
	next.MinFullSpins, next.MaxFullSpins = 3, 3
	next.CommonMarkers = []string{"candy"}
	require.NoError(t, svc.UpdateSettings(next))
	assert.Equal(t, "Lucky Wheel", svc.Settings().GameType)

	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{{ID: "p", Name: "Gold", Quantity: 1}},
	))
	draw := h.spinAndReveal(t, "1")
	assert.Equal(t, 3, draw.Spin.FullSpins)

	record, err := svc.Confirm()
	require.NoError(t, err)
	assert.Equal(t, "Lucky Wheel", record.GameType)
}

func TestLotteryService_RealTimerReveals(t *testing.T) {
	settings := DefaultSettings()
	settings.SpinDuration = 20 * time.Millisecond

	svc, err := NewLotteryService(settings, WithSource(rand.New(rand.NewPCG(1, 2))))
	require.NoError(t, err)
	defer svc.Close()

	var won []string
	svc.OnWinner(func(participantName, _, prizeName, _, _ string) {
		won = append(won, participantName+":"+prizeName)
	})

	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{{ID: "p", Name: "Gold", Quantity: 1}},
	))

	_, err = svc.Spin("1")
	require.NoError(t, err)

	require.Eventually(t, func() bool {
		return svc.Status().State == StateRevealed
	}, time.Second, 5*time.Millisecond)

	_, err = svc.Confirm()
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice:Gold"}, won)
	assert.Equal(t, int64(1), svc.Stats().SpinsRevealed)
}

func TestLotteryService_SettingsChangeDuringSpin(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{
			{ID: "g", Name: "Gold", Quantity: 4},
			{ID: "c", Name: "Cash", Quantity: 4},
		},
	))

	_, err := svc.Spin("1")
	require.NoError(t, err)
	spinning := svc.GetSegments()

	next := DefaultSettings()
	next.CommonMarkers = []string{"cash"}
	require.NoError(t, svc.UpdateSettings(next))
	assert.Equal(t, spinning, svc.GetSegments(), "the wheel keeps its order while spinning")

	h.fireLast(t)
	assert.Equal(t, spinning, svc.GetSegments(), "the revealed wheel matches the spun one")

	require.NoError(t, svc.UpdateSettings(next))
	assert.Equal(t, spinning, svc.GetSegments(), "a revealed draw keeps its order too")

	require.NoError(t, svc.Discard())
	segments := svc.GetSegments()
	require.Len(t, segments, 8)
	for i := range segments {
		assert.Equal(t, i%2 == 1, segments[i].PrizeID == "c", "segment %d: %v", i, segments)
	}
}

func TestLotteryService_SettingsChangeBeforeNextSpin(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{
			{ID: "g", Name: "Gold", Quantity: 3},
			{ID: "c", Name: "Cash", Quantity: 3},
		},
	))

	_, err := svc.Spin("1")
	require.NoError(t, err)
	next := DefaultSettings()
	next.CommonMarkers = []string{"cash"}
	require.NoError(t, svc.UpdateSettings(next))
	h.fireLast(t)

	// a new spin from the revealed state draws on the new arrangement
	draw, err := svc.Spin("1")
	require.NoError(t, err)
	segments := svc.GetSegments()
	for i, seg := range segments {
		assert.Equal(t, i%2 == 1, seg.PrizeID == "c", "segment %d: %v", i, segments)
	}
	assert.Equal(t, segments[draw.Spin.Index], draw.Segment)
	assert.Equal(t, draw.Spin.Index, wheel.SegmentUnderPointer(draw.Spin.To, len(segments)))
}

func TestLotteryService_ClearHistoryReleasesRetiredIDs(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed(
		[]models.Participant{{ID: "1", Name: "Alice"}},
		[]models.Prize{{ID: "g", Name: "Gold", Quantity: 1}},
	))

	h.spinAndReveal(t, "1")
	_, err := svc.Confirm()
	require.NoError(t, err)
	require.Empty(t, svc.GetPrizes())

	_, err = svc.AddPrize("g", "Gold", "", 1)
	assert.ErrorIs(t, err, ErrDuplicateID, "retired id stays reserved while its record can be undone")

	svc.ClearHistory()
	p, err := svc.AddPrize("g", "Gold", "", 2)
	require.NoError(t, err)
	assert.Equal(t, "g", p.ID)
	assert.Len(t, svc.GetSegments(), 2)
}

func TestLotteryService_SpinStopsOnDrawnSegment(t *testing.T) {
	h := newHarness(t)
	svc := h.svc
	require.NoError(t, svc.Seed([]models.Participant{{ID: "1", Name: "Alice"}}, []models.Prize{
		{ID: "a", Name: "TV", Quantity: 20},
		{ID: "b", Name: "200K", Quantity: 20},
		{ID: "c", Name: "Mug", Quantity: 20},
	}))

	for range 40 {
		draw := h.spinAndReveal(t, "1")
		segments := svc.GetSegments()
		require.Equal(t, segments[draw.Spin.Index], draw.Segment)
		require.Equal(t, draw.Spin.Index, wheel.SegmentUnderPointer(draw.Spin.To, len(segments)))
		require.NoError(t, svc.Discard())
	}
}
