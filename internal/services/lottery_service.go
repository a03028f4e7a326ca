package services

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/logger"
	"github.com/google/uuid"

	"luckywheel/internal/models"
	"luckywheel/internal/wheel"
)

const (
	// DefaultSpinDuration is how long the wheel animates before the result is revealed.
	DefaultSpinDuration = 10 * time.Second

	// DefaultGameType labels records created by the wheel.
	DefaultGameType = "Vòng Quay May Mắn"

	// DefaultPrizeColor is used when a dropped prize has to be rebuilt from history.
	DefaultPrizeColor = "#FF6B6B"
)

// PresetColors is the palette offered for new prizes.
var PresetColors = []string{
	"#FF6B6B", "#4ECDC4", "#45B7D1", "#FFA07A",
	"#98D8C8", "#F7DC6F", "#BB8FCE", "#85C1E2",
	"#F8B739", "#52B788", "#E63946", "#457B9D",
}

var colorPattern = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// State is the lifecycle position of the current draw.
type State string

const (
	StateIdle      State = "idle"
	StateSpinning  State = "spinning"
	StateRevealed  State = "revealed"
	StateCommitted State = "committed"
	StateDiscarded State = "discarded"
)

// Settings controls how spins are performed.
type Settings struct {
	SpinDuration  time.Duration
	MinFullSpins  int
	MaxFullSpins  int
	GameType      string
	CommonMarkers []string
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		SpinDuration:  DefaultSpinDuration,
		MinFullSpins:  wheel.DefaultMinFullSpins,
		MaxFullSpins:  wheel.DefaultMaxFullSpins,
		GameType:      DefaultGameType,
		CommonMarkers: wheel.DefaultCommonMarkers,
	}
}

// Validate checks that the settings can drive a spin.
func (s Settings) Validate() error {
	if s.SpinDuration <= 0 {
		return fmt.Errorf("%w: spin duration must be positive", ErrInvalidSettings)
	}
	if s.MinFullSpins < 1 || s.MinFullSpins > s.MaxFullSpins {
		return fmt.Errorf("%w: %w", ErrInvalidSettings, wheel.ErrInvalidSpinRange)
	}
	if strings.TrimSpace(s.GameType) == "" {
		return fmt.Errorf("%w: game type cannot be empty", ErrInvalidSettings)
	}
	return nil
}

// Draw is the outcome fixed when a spin starts. It is never re-derived:
// the same segment drives the rotation target and the revealed winner.
type Draw struct {
	ID          string             `json:"id"`
	Participant models.Participant `json:"participant"`
	Segment     models.Segment     `json:"segment"`
	Spin        wheel.Spin         `json:"spin"`
	DurationMs  int64              `json:"durationMs"`
	StartedAt   time.Time          `json:"startedAt"`
	RevealAt    time.Time          `json:"revealAt"`
}

// DrawStatus reports the current draw and where it is in its lifecycle.
type DrawStatus struct {
	State  State                `json:"state"`
	Draw   *Draw                `json:"draw,omitempty"`
	Record *models.WinnerRecord `json:"record,omitempty"`
}

// Snapshot is a consistent copy of the whole session.
type Snapshot struct {
	Participants []models.Participant  `json:"participants"`
	Prizes       []models.Prize        `json:"prizes"`
	Segments     []models.Segment      `json:"segments"`
	History      []models.WinnerRecord `json:"history"`
	Rotation     float64               `json:"rotation"`
	Status       DrawStatus            `json:"status"`
	CanSpin      bool                  `json:"canSpin"`
	Stats        Stats                 `json:"stats"`
}

// WinnerListener is notified after a draw is committed.
type WinnerListener func(participantName, participantID, prizeName, prizeID, gameType string)

type timer interface {
	Stop() bool
}

// Option configures a LotteryService.
type Option func(*LotteryService)

// WithSource sets the random source used for arranging and drawing.
func WithSource(src wheel.Source) Option {
	return func(s *LotteryService) { s.source = src }
}

// WithClock sets the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *LotteryService) { s.now = now }
}

// WithWinnerListener registers a listener for committed wins.
func WithWinnerListener(l WinnerListener) Option {
	return func(s *LotteryService) { s.listeners = append(s.listeners, l) }
}

// LotteryService owns the roster, the prize pool, the history and the wheel.
// It is the only place session state is mutated.
type LotteryService struct {
	mu sync.Mutex

	settings Settings
	source   wheel.Source
	builder  *wheel.Builder
	mapper   *wheel.Mapper

	participants []models.Participant
	prizes       []models.Prize
	// retired keeps exhausted prizes so undo can restore them intact
	retired  map[string]models.Prize
	segments []models.Segment
	history  []models.WinnerRecord
	// staleSegments is set when the arrangement rules changed during a draw
	staleSegments bool

	rotation float64
	state    State
	current  *Draw
	record   *models.WinnerRecord
	timer    timer

	listeners []WinnerListener
	stats     *statsRecorder
	now       func() time.Time
	afterFunc func(time.Duration, func()) timer
}

// NewLotteryService creates an empty session.
func NewLotteryService(settings Settings, opts ...Option) (*LotteryService, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	s := &LotteryService{
		settings:     settings,
		source:       wheel.NewSecureSource(),
		participants: make([]models.Participant, 0),
		prizes:       make([]models.Prize, 0),
		retired:      make(map[string]models.Prize),
		history:      make([]models.WinnerRecord, 0),
		state:        StateIdle,
		stats:        newStatsRecorder(),
		now:          time.Now,
		afterFunc: func(d time.Duration, f func()) timer {
			return time.AfterFunc(d, f)
		},
	}
	for _, opt := range opts {
		opt(s)
	}

	mapper, err := wheel.NewMapper(s.source, settings.MinFullSpins, settings.MaxFullSpins)
	if err != nil {
		return nil, err
	}
	s.mapper = mapper
	s.builder = wheel.NewBuilder(s.source, settings.CommonMarkers...)
	s.rebuild()

	return s, nil
}

// Settings returns the active settings.
func (s *LotteryService) Settings() Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings swaps the spin settings. A spin already running keeps the
// outcome and rotation it started with.
func (s *LotteryService) UpdateSettings(settings Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	mapper, err := wheel.NewMapper(s.source, settings.MinFullSpins, settings.MaxFullSpins)
	if err != nil {
		return err
	}
	s.settings = settings
	s.mapper = mapper
	s.builder = wheel.NewBuilder(s.source, settings.CommonMarkers...)
	if s.state == StateSpinning || s.state == StateRevealed {
		// the displayed order stays until the draw is settled
		s.staleSegments = true
	} else {
		s.rebuild()
	}

	logger.Infof("Wheel settings updated: duration=%v spins=%d-%d gameType=%q",
		settings.SpinDuration, settings.MinFullSpins, settings.MaxFullSpins, settings.GameType)
	return nil
}

// OnWinner registers a listener for committed wins.
func (s *LotteryService) OnWinner(l WinnerListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Seed loads an initial roster and prize pool.
func (s *LotteryService) Seed(participants []models.Participant, prizes []models.Prize) error {
	for i, p := range participants {
		if _, err := s.AddParticipant(p.ID, p.Name); err != nil {
			return fmt.Errorf("seed participant %d: %w", i, err)
		}
	}
	for i, p := range prizes {
		if _, err := s.AddPrize(p.ID, p.Name, p.Color, p.Quantity); err != nil {
			return fmt.Errorf("seed prize %d: %w", i, err)
		}
	}
	return nil
}

// GetParticipants returns a copy of the roster.
func (s *LotteryService) GetParticipants() []models.Participant {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.participants)
}

// GetPrizes returns a copy of the active prize pool.
func (s *LotteryService) GetPrizes() []models.Prize {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.prizes)
}

// GetSegments returns the current wheel arrangement.
func (s *LotteryService) GetSegments() []models.Segment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.segments)
}

// GetHistory returns the winner records, newest first.
func (s *LotteryService) GetHistory() []models.WinnerRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.history)
}

// Rotation returns the accumulated wheel rotation in degrees.
func (s *LotteryService) Rotation() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rotation
}

// Stats returns the session counters.
func (s *LotteryService) Stats() Stats {
	return s.stats.snapshot()
}

// Status returns the current draw.
func (s *LotteryService) Status() DrawStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.statusLocked()
}

// Snapshot returns a consistent copy of the session.
func (s *LotteryService) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	return Snapshot{
		Participants: slices.Clone(s.participants),
		Prizes:       slices.Clone(s.prizes),
		Segments:     slices.Clone(s.segments),
		History:      slices.Clone(s.history),
		Rotation:     s.rotation,
		Status:       s.statusLocked(),
		CanSpin:      s.state != StateSpinning && len(s.participants) > 0 && len(s.segments) > 0,
		Stats:        s.stats.snapshot(),
	}
}

// Layout returns the wheel geometry for a size preset at the current rotation.
func (s *LotteryService) Layout(size wheel.Size) wheel.Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return wheel.NewLayout(s.segments, size, s.rotation)
}

// AddParticipant adds a participant to the roster. An empty id is generated.
func (s *LotteryService) AddParticipant(id, name string) (models.Participant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Participant{}, ErrEmptyName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return models.Participant{}, ErrSpinInProgress
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	} else if s.participantIndex(id) >= 0 {
		return models.Participant{}, fmt.Errorf("participant %q: %w", id, ErrDuplicateID)
	}

	p := models.Participant{ID: id, Name: name}
	s.participants = append(s.participants, p)
	return p, nil
}

// RemoveParticipant removes a participant from the roster.
func (s *LotteryService) RemoveParticipant(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return ErrSpinInProgress
	}

	i := s.participantIndex(id)
	if i < 0 {
		return ErrParticipantNotFound
	}
	s.participants = slices.Delete(s.participants, i, i+1)
	return nil
}

// AddPrize adds a prize to the pool. An empty id is generated and an empty
// color is picked from PresetColors.
func (s *LotteryService) AddPrize(id, name, color string, quantity int) (models.Prize, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Prize{}, ErrEmptyName
	}
	if quantity <= 0 {
		return models.Prize{}, ErrInvalidQuantity
	}
	color = strings.TrimSpace(color)
	if color != "" && !colorPattern.MatchString(color) {
		return models.Prize{}, fmt.Errorf("%q: %w", color, ErrInvalidColor)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return models.Prize{}, ErrSpinInProgress
	}

	id = strings.TrimSpace(id)
	if id == "" {
		id = uuid.NewString()
	} else if _, retired := s.retired[id]; retired || s.prizeIndex(id) >= 0 {
		return models.Prize{}, fmt.Errorf("prize %q: %w", id, ErrDuplicateID)
	}
	if color == "" {
		color = PresetColors[len(s.prizes)%len(PresetColors)]
	}

	p := models.Prize{ID: id, Name: name, Color: color, Quantity: quantity}
	s.prizes = append(s.prizes, p)
	s.rebuild()
	return p, nil
}

// RemovePrize removes a prize from the pool.
func (s *LotteryService) RemovePrize(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return ErrSpinInProgress
	}

	i := s.prizeIndex(id)
	if i < 0 {
		return ErrPrizeNotFound
	}
	s.prizes = slices.Delete(s.prizes, i, i+1)
	s.rebuild()
	return nil
}

// Spin draws a segment for the participant and starts the fixed-duration
// spin. A revealed but unconfirmed draw is discarded.
func (s *LotteryService) Spin(participantID string) (Draw, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return Draw{}, ErrSpinInProgress
	}
	i := s.participantIndex(participantID)
	if i < 0 {
		return Draw{}, ErrParticipantNotFound
	}
	s.refreshSegments()

	index, err := wheel.Draw(s.source, s.segments)
	if err != nil {
		return Draw{}, err
	}
	spin, err := s.mapper.Map(s.rotation, index, len(s.segments))
	if err != nil {
		return Draw{}, err
	}
	if landed := wheel.SegmentUnderPointer(spin.To, len(s.segments)); landed != index {
		return Draw{}, fmt.Errorf("%w: rotation %.2f stops on segment %d, drawn %d",
			ErrRotationMismatch, spin.To, landed, index)
	}

	if s.state == StateRevealed {
		s.discardLocked()
	}

	startedAt := s.now()
	draw := &Draw{
		ID:          uuid.NewString(),
		Participant: s.participants[i],
		Segment:     s.segments[index],
		Spin:        spin,
		DurationMs:  s.settings.SpinDuration.Milliseconds(),
		StartedAt:   startedAt,
		RevealAt:    startedAt.Add(s.settings.SpinDuration),
	}

	s.current = draw
	s.record = nil
	s.rotation = spin.To
	s.state = StateSpinning
	s.timer = s.afterFunc(s.settings.SpinDuration, func() { s.reveal(draw.ID) })
	s.stats.spinStarted()

	logger.Infof("Spin %s started: participant=%s segment=%d/%d prize=%q rotation=%.2f",
		draw.ID, draw.Participant.ID, index, len(s.segments), draw.Segment.Name, spin.To)
	return *draw, nil
}

// reveal ends the spin of drawID. Timers of draws that are no longer
// current are ignored.
func (s *LotteryService) reveal(drawID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateSpinning || s.current == nil || s.current.ID != drawID {
		return
	}
	s.state = StateRevealed
	s.timer = nil
	s.stats.spinRevealed()

	logger.Infof("Spin %s revealed: %s wins %q", drawID, s.current.Participant.Name, s.current.Segment.Name)
}

// Confirm commits the revealed draw: the prize unit is awarded, the
// participant leaves the roster and a record is prepended to the history.
func (s *LotteryService) Confirm() (models.WinnerRecord, error) {
	s.mu.Lock()

	if s.state != StateRevealed || s.current == nil {
		s.mu.Unlock()
		return models.WinnerRecord{}, ErrNothingToConfirm
	}

	draw := s.current
	record := models.WinnerRecord{
		ID:              uuid.NewString(),
		ParticipantID:   draw.Participant.ID,
		ParticipantName: draw.Participant.Name,
		PrizeID:         draw.Segment.PrizeID,
		PrizeName:       draw.Segment.Name,
		Timestamp:       s.now(),
		GameType:        s.settings.GameType,
	}

	if i := s.prizeIndex(record.PrizeID); i >= 0 {
		s.prizes[i].WonCount++
		if s.prizes[i].Exhausted() {
			s.retired[record.PrizeID] = s.prizes[i]
			s.prizes = slices.Delete(s.prizes, i, i+1)
			logger.Infof("Prize %q exhausted and removed from the pool", record.PrizeName)
		}
	} else {
		logger.Warningf("Prize %s left the pool before draw %s was confirmed", record.PrizeID, draw.ID)
	}
	if i := s.participantIndex(record.ParticipantID); i >= 0 {
		s.participants = slices.Delete(s.participants, i, i+1)
	}
	s.history = slices.Insert(s.history, 0, record)
	s.rebuild()

	s.state = StateCommitted
	s.record = &record
	s.stats.committed()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	logger.Infof("Draw %s committed as record %s", draw.ID, record.ID)
	for _, l := range listeners {
		l(record.ParticipantName, record.ParticipantID, record.PrizeName, record.PrizeID, record.GameType)
	}
	return record, nil
}

// Discard abandons the revealed draw without touching roster or prizes.
func (s *LotteryService) Discard() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateRevealed {
		return ErrNothingToConfirm
	}
	s.discardLocked()
	return nil
}

// Reset returns the wheel to rotation 0 and drops any unconfirmed draw.
func (s *LotteryService) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return ErrSpinInProgress
	}
	if s.state == StateRevealed {
		s.discardLocked()
	}
	s.rotation = 0
	s.state = StateIdle
	s.current = nil
	s.record = nil
	return nil
}

// Undo removes a winner record and reverses its effects: the participant
// returns to the roster and the prize unit returns to the pool.
func (s *LotteryService) Undo(recordID string) (models.WinnerRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateSpinning {
		return models.WinnerRecord{}, ErrSpinInProgress
	}

	idx := slices.IndexFunc(s.history, func(r models.WinnerRecord) bool { return r.ID == recordID })
	if idx < 0 {
		return models.WinnerRecord{}, ErrRecordNotFound
	}
	record := s.history[idx]
	s.history = slices.Delete(s.history, idx, idx+1)

	if s.participantIndex(record.ParticipantID) < 0 {
		s.participants = append(s.participants, models.Participant{
			ID:   record.ParticipantID,
			Name: record.ParticipantName,
		})
	}

	if i := s.prizeIndex(record.PrizeID); i >= 0 {
		s.prizes[i].WonCount = max(0, s.prizes[i].WonCount-1)
	} else if p, ok := s.retired[record.PrizeID]; ok {
		delete(s.retired, record.PrizeID)
		p.WonCount = max(0, p.WonCount-1)
		s.prizes = append(s.prizes, p)
	} else {
		// metadata is gone: rebuild from the remaining records
		won := 0
		for _, r := range s.history {
			if r.PrizeID == record.PrizeID {
				won++
			}
		}
		s.prizes = append(s.prizes, models.Prize{
			ID:       record.PrizeID,
			Name:     record.PrizeName,
			Color:    DefaultPrizeColor,
			Quantity: won + 1,
			WonCount: won,
		})
		logger.Warningf("Prize %s rebuilt from history with quantity %d", record.PrizeID, won+1)
	}
	s.rebuild()

	if s.record != nil && s.record.ID == recordID {
		s.record = nil
	}
	s.stats.undone()

	logger.Infof("Record %s undone: %s returned to the roster", record.ID, record.ParticipantName)
	return record, nil
}

// ClearHistory drops every winner record without reversing any of them.
func (s *LotteryService) ClearHistory() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = make([]models.WinnerRecord, 0)
	s.record = nil
	// nothing is left to undo, so retired ids can be reused
	clear(s.retired)
	logger.Infof("History cleared")
}

// Close stops a pending spin timer.
func (s *LotteryService) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *LotteryService) discardLocked() {
	logger.Infof("Draw %s discarded", s.current.ID)
	s.state = StateDiscarded
	s.stats.discarded()
	s.refreshSegments()
}

func (s *LotteryService) statusLocked() DrawStatus {
	status := DrawStatus{State: s.state}
	if s.current != nil {
		d := *s.current
		status.Draw = &d
	}
	if s.record != nil {
		r := *s.record
		status.Record = &r
	}
	return status
}

// rebuild rearranges the wheel from the current prize pool.
func (s *LotteryService) rebuild() {
	s.segments = s.builder.Build(s.prizes)
	s.staleSegments = false
}

// refreshSegments applies a rebuild deferred while the wheel was spinning.
func (s *LotteryService) refreshSegments() {
	if s.staleSegments {
		s.rebuild()
	}
}

func (s *LotteryService) participantIndex(id string) int {
	return slices.IndexFunc(s.participants, func(p models.Participant) bool { return p.ID == id })
}

func (s *LotteryService) prizeIndex(id string) int {
	return slices.IndexFunc(s.prizes, func(p models.Prize) bool { return p.ID == id })
}
