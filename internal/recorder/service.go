// Package recorder owns the live recording sessions. It applies operator commands to a
// game's match.Session, persists the events they append, keeps the box-score cache
// current and runs the match clock.
package recorder

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/codr1/handball-record/internal/boxscore"
	"github.com/codr1/handball-record/internal/db"
	dbgen "github.com/codr1/handball-record/internal/db/generated"
	"github.com/codr1/handball-record/internal/gamelog"
	"github.com/codr1/handball-record/internal/match"
	"github.com/codr1/handball-record/internal/roster"
)

var (
	ErrGameNotFound = errors.New("game not found")
	ErrClosed       = errors.New("recorder is closed")
)

// Update types sent to the Publisher.
const (
	UpdateSession  = "session"
	UpdateBoxScore = "boxscore"
)

// Publisher receives every committed change of a live game.
type Publisher interface {
	Publish(game int64, typ string, payload any)
}

type Service struct {
	db    *db.DB
	cache *boxscore.Cache
	pub   Publisher
	clock clockwork.Clock

	mu     sync.Mutex
	live   map[int64]*liveGame
	closed bool
	wg     sync.WaitGroup

	logger zerolog.Logger
}

type liveGame struct {
	mu      sync.Mutex
	game    dbgen.Game
	rosters match.Rosters
	session match.Session
	stop    chan struct{}
	// detached is set once the game leaves the live map; it is never used again.
	detached bool
}

// New returns a service. cache and pub may be nil; without a cache, box scores are
// computed from the live session. clock defaults to the real clock.
func New(database *db.DB, cache *boxscore.Cache, pub Publisher, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{
		db:     database,
		cache:  cache,
		pub:    pub,
		clock:  clock,
		live:   make(map[int64]*liveGame),
		logger: log.With().Str("component", "recorder").Logger(),
	}
}

// Close stops every running clock and waits for the clock goroutines to exit.
func (s *Service) Close() {
	s.mu.Lock()
	s.closed = true
	for _, lg := range s.live {
		lg.mu.Lock()
		lg.detach()
		lg.mu.Unlock()
	}
	s.mu.Unlock()
	s.wg.Wait()
}

// Evict drops the in-memory session of a game so the next command reloads it from the
// store. The clock is stopped.
func (s *Service) Evict(number int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if lg, ok := s.live[number]; ok {
		lg.mu.Lock()
		lg.detach()
		lg.mu.Unlock()
		delete(s.live, number)
	}
}

// RefreshRosters reloads the team sheets of every live game of team in group.
func (s *Service) RefreshRosters(ctx context.Context, group, team string) error {
	s.mu.Lock()
	games := make([]*liveGame, 0, len(s.live))
	for _, lg := range s.live {
		games = append(games, lg)
	}
	s.mu.Unlock()

	for _, lg := range games {
		lg.mu.Lock()
		if lg.detached || lg.game.GroupName != group || (lg.game.Team1 != team && lg.game.Team2 != team) {
			lg.mu.Unlock()
			continue
		}
		rosters, err := roster.LoadGame(ctx, s.db.Queries, lg.game)
		if err == nil {
			lg.rosters = rosters
		}
		lg.mu.Unlock()
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *Service) load(ctx context.Context, number int64) (*liveGame, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if lg, ok := s.live[number]; ok {
		return lg, nil
	}

	game, err := s.db.Queries.GetGameByNumber(ctx, number)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGameNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load game %d: %w", number, err)
	}
	rosters, err := roster.LoadGame(ctx, s.db.Queries, game)
	if err != nil {
		return nil, err
	}
	events, err := gamelog.Load(ctx, s.db.Queries, game.ID)
	if err != nil {
		return nil, err
	}

	session := match.RestoreSession(events)
	if !session.MatchStarted {
		session.Goalkeepers = match.SeedGoalkeepers(rosters)
	}

	lg := &liveGame{game: game, rosters: rosters, session: session}
	s.live[number] = lg
	s.logger.Debug().Int64("game_number", number).Int("events", len(events)).Msg("Loaded live game")
	return lg, nil
}

// acquire returns the live game locked. A game evicted between the lookup and the lock
// is looked up again; once the service is closed the lookup fails with ErrClosed.
func (s *Service) acquire(ctx context.Context, number int64) (*liveGame, error) {
	for {
		lg, err := s.load(ctx, number)
		if err != nil {
			return nil, err
		}
		lg.mu.Lock()
		if !lg.detached {
			return lg, nil
		}
		lg.mu.Unlock()
	}
}

// View returns the current state of a game.
func (s *Service) View(ctx context.Context, number int64) (View, error) {
	lg, err := s.acquire(ctx, number)
	if err != nil {
		return View{}, err
	}
	defer lg.mu.Unlock()
	return lg.view(), nil
}

// Rosters returns both team sheets of a live game.
func (s *Service) Rosters(ctx context.Context, number int64) (dbgen.Game, match.Rosters, error) {
	lg, err := s.acquire(ctx, number)
	if err != nil {
		return dbgen.Game{}, match.Rosters{}, err
	}
	defer lg.mu.Unlock()
	return lg.game, lg.rosters, nil
}

// apply runs fn against the game's session and commits the result: new events are
// stored first, and nothing changes in memory if that fails.
func (s *Service) apply(ctx context.Context, number int64, fn func(match.Session) (match.Session, error)) (View, error) {
	lg, err := s.acquire(ctx, number)
	if err != nil {
		return View{}, err
	}
	defer lg.mu.Unlock()

	prev := lg.session
	next, err := fn(prev)
	if err != nil {
		return lg.view(), err
	}

	appended := len(next.Events) > len(prev.Events)
	if appended {
		if next, err = s.persistAppended(ctx, lg.game, len(prev.Events), next); err != nil {
			return lg.view(), err
		}
	}

	lg.session = next
	s.syncClock(number, lg)
	if appended {
		s.refreshCache(ctx, lg)
	}
	view := lg.view()
	s.publish(number, UpdateSession, view)
	return view, nil
}

func (s *Service) persistAppended(ctx context.Context, game dbgen.Game, from int, next match.Session) (match.Session, error) {
	err := s.db.RunInTx(ctx, func(tx *db.DB) error {
		for i := from; i < len(next.Events); i++ {
			stored, err := gamelog.Append(ctx, tx.Queries, game.ID, next.Events[i])
			if err != nil {
				return err
			}
			next = next.WithEventID(i, stored.ID)
		}
		return nil
	})
	if err != nil {
		s.logger.Error().Err(err).Int64("game_number", game.GameNumber).Msg("Failed to store events")
		return next, err
	}
	return next, nil
}

func (s *Service) refreshCache(ctx context.Context, lg *liveGame) {
	if s.cache == nil {
		return
	}
	snap, err := s.cache.Write(ctx, lg.game, lg.session.BoxScore(lg.rosters))
	if err != nil {
		s.logger.Error().Err(err).Int64("game_number", lg.game.GameNumber).Msg("Failed to write box score cache")
		return
	}
	s.publish(lg.game.GameNumber, UpdateBoxScore, snap)
}

func (s *Service) publish(number int64, typ string, payload any) {
	if s.pub != nil {
		s.pub.Publish(number, typ, payload)
	}
}

func (s *Service) SetInitialGoalkeeper(ctx context.Context, number int64, side match.Side, player string) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.SetInitialGoalkeeper(side, player)
	})
}

func (s *Service) SubstituteGoalkeeper(ctx context.Context, number int64, side match.Side, player string) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.SubstituteGoalkeeper(side, player)
	})
}

func (s *Service) StartPeriod(ctx context.Context, number int64, kind match.PeriodKind) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.StartPeriod(kind)
	})
}

func (s *Service) Pause(ctx context.Context, number int64) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.Pause(), nil
	})
}

func (s *Service) Resume(ctx context.Context, number int64) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.Resume(), nil
	})
}

func (s *Service) ResetClock(ctx context.Context, number int64) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.ResetClock(), nil
	})
}

func (s *Service) EndPeriod(ctx context.Context, number int64) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.EndPeriod()
	})
}

// CallTimeout checks the session first, then takes the timeout from the store with a
// conditional increment, and pauses the clock.
func (s *Service) CallTimeout(ctx context.Context, number int64, side match.Side) (View, error) {
	lg, err := s.acquire(ctx, number)
	if err != nil {
		return View{}, err
	}
	defer lg.mu.Unlock()

	next, err := lg.session.CallTimeout(side, lg.timeoutsUsed(side))
	if err != nil {
		return lg.view(), err
	}

	var used int64
	if side == match.SideA {
		used, err = s.db.Queries.IncrementTeam1Timeout(ctx, lg.game.ID)
	} else {
		used, err = s.db.Queries.IncrementTeam2Timeout(ctx, lg.game.ID)
	}
	if errors.Is(err, sql.ErrNoRows) {
		return lg.view(), match.ErrTimeoutsExhausted
	}
	if err != nil {
		s.logger.Error().Err(err).Int64("game_number", number).Msg("Failed to record timeout")
		return lg.view(), fmt.Errorf("record timeout: %w", err)
	}

	if side == match.SideA {
		lg.game.Team1Timeouts = used
	} else {
		lg.game.Team2Timeouts = used
	}
	lg.session = next
	s.syncClock(number, lg)

	view := lg.view()
	s.publish(number, UpdateSession, view)
	return view, nil
}

func (s *Service) SelectPlayer(ctx context.Context, number int64, side match.Side, player string) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.SelectPlayer(side, player)
	})
}

func (s *Service) ChooseAction(ctx context.Context, number int64, code match.ActionCode) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.ChooseAction(code)
	})
}

func (s *Service) ChooseCourtPosition(ctx context.Context, number int64, point match.CourtPoint) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.ChooseCourtPosition(point)
	})
}

func (s *Service) ChooseZone(ctx context.Context, number int64, zone match.GoalZone) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.ChooseZone(zone)
	})
}

func (s *Service) ClearEntry(ctx context.Context, number int64) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.ClearEntry(), nil
	})
}

// Resolve records the pending entry with outcome. The Resolution says whether an event
// was appended or the outcome is waiting for confirmation.
func (s *Service) Resolve(ctx context.Context, number int64, outcome match.Outcome) (View, match.Resolution, error) {
	var res match.Resolution
	view, err := s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		next, r, err := sess.Resolve(outcome)
		res = r
		return next, err
	})
	return view, res, err
}

func (s *Service) ConfirmAttribution(ctx context.Context, number int64) (View, match.Resolution, error) {
	var res match.Resolution
	view, err := s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		next, r, err := sess.ConfirmAttribution()
		res = r
		return next, err
	})
	return view, res, err
}

func (s *Service) CancelAttribution(ctx context.Context, number int64) (View, error) {
	return s.apply(ctx, number, func(sess match.Session) (match.Session, error) {
		return sess.CancelAttribution()
	})
}

// DeleteEvent removes the event at index from the log and the store and rolls back the
// goal it scored.
func (s *Service) DeleteEvent(ctx context.Context, number int64, index int) (View, match.Event, error) {
	lg, err := s.acquire(ctx, number)
	if err != nil {
		return View{}, match.Event{}, err
	}
	defer lg.mu.Unlock()

	next, removed, err := lg.session.DeleteEvent(index)
	if err != nil {
		return lg.view(), match.Event{}, err
	}
	if removed.ID != 0 {
		if err := gamelog.Delete(ctx, s.db.Queries, lg.game.ID, removed.ID); err != nil && !errors.Is(err, gamelog.ErrEventNotFound) {
			s.logger.Error().Err(err).Int64("game_number", number).Int64("event_id", removed.ID).Msg("Failed to delete event")
			return lg.view(), match.Event{}, err
		}
	}

	lg.session = next
	s.refreshCache(ctx, lg)
	view := lg.view()
	s.publish(number, UpdateSession, view)
	return view, removed, nil
}

// BoxScore returns the cached box score of a game.
func (s *Service) BoxScore(ctx context.Context, number int64) (boxscore.Snapshot, error) {
	game, err := s.db.Queries.GetGameByNumber(ctx, number)
	if errors.Is(err, sql.ErrNoRows) {
		return boxscore.Snapshot{}, ErrGameNotFound
	}
	if err != nil {
		return boxscore.Snapshot{}, fmt.Errorf("load game %d: %w", number, err)
	}
	if s.cache != nil {
		return s.cache.Read(ctx, game)
	}

	lg, err := s.acquire(ctx, number)
	if err != nil {
		return boxscore.Snapshot{}, err
	}
	defer lg.mu.Unlock()
	snap := boxscore.Snapshot{
		GameNumber: game.GameNumber,
		Team1:      game.Team1,
		Team2:      game.Team2,
		Lines:      lg.session.BoxScore(lg.rosters).Lines(),
		UpdatedAt:  s.clock.Now().UTC(),
	}
	for i := range snap.Lines {
		snap.Lines[i].Team = game.Team1
		if snap.Lines[i].Side == match.SideB {
			snap.Lines[i].Team = game.Team2
		}
	}
	return snap, nil
}

// syncClock starts or stops the clock goroutine to match the session clock. Callers hold
// lg.mu.
func (s *Service) syncClock(number int64, lg *liveGame) {
	running := lg.session.Clock.Running
	switch {
	case running && lg.stop == nil:
		stop := make(chan struct{})
		lg.stop = stop
		s.wg.Add(1)
		go s.runClock(number, lg, stop)
	case !running:
		lg.stopClock()
	}
}

func (s *Service) runClock(number int64, lg *liveGame, stop chan struct{}) {
	defer s.wg.Done()
	ticker := s.clock.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.Chan():
		}

		lg.mu.Lock()
		select {
		case <-stop:
			lg.mu.Unlock()
			return
		default:
		}
		lg.session = lg.session.Tick()
		if !lg.session.Clock.Running {
			lg.stopClock()
		}
		view := lg.view()
		lg.mu.Unlock()

		s.publish(number, UpdateSession, view)
	}
}

// detach stops the clock and marks the game as no longer live. Callers hold lg.mu.
func (lg *liveGame) detach() {
	lg.stopClock()
	lg.detached = true
}

func (lg *liveGame) stopClock() {
	if lg.stop != nil {
		close(lg.stop)
		lg.stop = nil
	}
}

func (lg *liveGame) timeoutsUsed(side match.Side) int {
	if side == match.SideB {
		return int(lg.game.Team2Timeouts)
	}
	return int(lg.game.Team1Timeouts)
}
