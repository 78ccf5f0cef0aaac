// Package game implements the rules engine: the cube bag, the deck, the
// races, the cube and cup economy and the turn state machine that drives them.
//
// The engine is single-threaded and synchronous. Every command validates
// fully before it mutates anything, so a rejected command leaves the game
// exactly as it was.
package game

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/cuprace/internal/core"
)

// Options configures a Controller.
type Options struct {
	// Seed seeds the first game. Later games derive their seeds from it.
	Seed int64

	// Names are the display names used in status messages, by player index.
	Names [core.NumPlayers]string

	// Listener receives notifications. Nil means none.
	Listener Listener

	// Logger receives rejected actions (debug) and invariant violations (error).
	Logger *log.Logger

	// Strict panics on invariant violations instead of logging and continuing.
	Strict bool

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Controller owns one table: bag, deck, races and economy, and sequences the
// players' turns. It is not safe for concurrent use.
type Controller struct {
	rng     *rand.Rand
	seeder  *rand.Rand
	bag     *Bag
	deck    *Deck
	races   [core.NumRaces]*Race
	economy *Economy

	events Listener
	logger *log.Logger
	strict bool
	names  [core.NumPlayers]string
	now    func() time.Time

	gameState      core.GameState
	turnState      core.TurnState
	current        core.Player
	lastRaceWinner core.Player
	roundWinner    core.Player
	finishedRace   *Race

	hands           [core.NumPlayers][core.HandSize]core.Card
	handRevealed    bool
	selected        []int // newest first
	discardPassUsed bool

	status    string
	seed      int64
	nextSeed  int64
	turns     int
	racesRun  int
	endReason EndReason
	startedAt time.Time
}

// New creates a controller. No game is running until NewGame is called.
func New(opts Options) *Controller {
	events := opts.Listener
	if events == nil {
		events = NopListener{}
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	names := opts.Names
	for _, p := range core.Players() {
		if names[p] == "" {
			names[p] = p.String()
		}
	}

	g := &Controller{
		rng:            rand.New(rand.NewSource(opts.Seed)),
		seeder:         rand.New(rand.NewSource(opts.Seed)),
		events:         events,
		logger:         logger,
		strict:         opts.Strict,
		names:          names,
		now:            now,
		gameState:      core.Initialising,
		current:        core.Unknown,
		lastRaceWinner: core.Unknown,
		roundWinner:    core.Unknown,
		nextSeed:       opts.Seed,
	}
	g.bag = NewBag(g.rng)
	g.deck = NewDeck(g.rng)
	g.economy = NewEconomy(events)

	host := raceHost{g: g}
	for i, size := range core.RaceSizes() {
		g.races[i] = NewRace(i, size, host, events)
	}
	for _, p := range core.Players() {
		for i := range g.hands[p] {
			g.hands[p][i] = core.NoCard
		}
	}
	return g
}

// NewGame deals a fresh game, abandoning any game in progress.
func (g *Controller) NewGame() {
	g.gameState = core.NewGame
	g.seed = g.nextSeed
	g.nextSeed = g.seeder.Int63()
	g.rng.Seed(g.seed)

	g.bag.Reset()
	g.bag.Shuffle()
	g.deck.NewRound()
	g.economy.Reset()
	for _, p := range core.Players() {
		for _, c := range core.Colors() {
			g.events.PlayerCubeCountChanged(p, c, 0)
		}
		g.events.WildcardCountChanged(p, 0)
	}

	for _, p := range core.Players() {
		for i := range g.hands[p] {
			g.drawInto(p, i)
		}
	}
	for _, r := range g.races {
		r.NewGame()
	}

	g.current = core.Players()[g.rng.Intn(core.NumPlayers)]
	g.lastRaceWinner = core.Unknown
	g.roundWinner = core.Unknown
	g.finishedRace = nil
	g.selected = nil
	g.handRevealed = false
	g.discardPassUsed = false
	g.turns = 1
	g.racesRun = 0
	g.endReason = ""
	g.startedAt = g.now()

	g.logger.Info("new game", "seed", g.seed, "first", g.current)
	g.gameState = core.InGame
	g.turnState = core.StartingPlayerTurn
	g.setStatus("%s starts. Press continue to see your hand.", g.name(g.current))
}

// GameState returns the game phase.
func (g *Controller) GameState() core.GameState { return g.gameState }

// TurnState returns the turn phase.
func (g *Controller) TurnState() core.TurnState { return g.turnState }

// CurrentPlayer returns whose turn it is.
func (g *Controller) CurrentPlayer() core.Player { return g.current }

// RoundWinner returns the winner of a finished game, or Unknown.
func (g *Controller) RoundWinner() core.Player { return g.roundWinner }

// Status returns the latest status message.
func (g *Controller) Status() string { return g.status }

// Economy exposes the cube and cup tables for reading.
func (g *Controller) Economy() *Economy { return g.economy }

// Race returns a race slot, or nil when out of range.
func (g *Controller) Race(i int) *Race {
	if i < 0 || i >= len(g.races) {
		return nil
	}
	return g.races[i]
}

// HasPlayerWon reports whether p has collected enough cups.
func (g *Controller) HasPlayerWon(p core.Player) bool {
	return g.economy.HasPlayerWon(p)
}

func (g *Controller) name(p core.Player) string {
	if i := p.Index(); i >= 0 {
		return g.names[i]
	}
	return p.String()
}

func (g *Controller) setStatus(format string, args ...any) {
	g.status = fmt.Sprintf(format, args...)
	g.events.StatusChanged(g.status)
}

// reject reports a refused player action. Only the status line changes.
func (g *Controller) reject(action string, err error) error {
	err = fmt.Errorf("%s: %w", action, err)
	g.logger.Debug("action rejected", "action", action, "turn", g.turnState, "player", g.current, "err", err)
	g.setStatus("%s", err)
	return err
}

// violation reports a broken rules invariant. It never returns in strict mode.
func (g *Controller) violation(err error, keyvals ...any) {
	err = fmt.Errorf("%w: %w", ErrInvariant, err)
	g.logger.Error("invariant violation", append([]any{"err", err}, keyvals...)...)
	if g.strict {
		panic(err)
	}
}

// drawInto refills a hand slot, reshuffling the discard pile when needed.
func (g *Controller) drawInto(p core.Player, index int) {
	card, err := g.deck.Draw()
	if errors.Is(err, ErrDrawPileEmpty) {
		if rerr := g.deck.ReshuffleFromDiscard(); rerr != nil {
			g.violation(rerr, "player", p, "slot", index)
			return
		}
		g.logger.Debug("reshuffled discard pile", "cards", g.deck.DrawPileSize())
		card, err = g.deck.Draw()
	}
	if err != nil {
		g.violation(err, "player", p, "slot", index)
		return
	}
	g.hands[p][index] = card
	g.events.HandCardChanged(p, index, card)
}

// raceHost gives races access to the bag, deck and economy without exposing
// those operations as public controller methods.
type raceHost struct {
	g *Controller
}

func (h raceHost) CubesInBag() int {
	return h.g.bag.Remaining()
}

func (h raceHost) DrawFromBag() (core.Color, error) {
	c, err := h.g.bag.Next()
	if err != nil {
		h.g.violation(err)
	}
	return c, err
}

func (h raceHost) AddCubeToPlayer(p core.Player, c core.Color) {
	if err := h.g.economy.AddCubeToPlayer(p, c); err != nil {
		h.g.violation(err)
	}
}

func (h raceHost) DiscardCard(card core.Card) {
	h.g.deck.Discard(card)
}

func (h raceHost) RaceFinished(r *Race) {
	g := h.g
	g.finishedRace = r
	g.lastRaceWinner = r.Winner()
	g.racesRun++
	g.logger.Debug("race finished", "race", r.Slot(), "winner", r.Winner(), "scores", r.LastResult().Scores)
}

var _ RaceHost = raceHost{}
