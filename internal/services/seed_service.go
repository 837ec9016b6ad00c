package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/vytor/flashdeck/internal/errors"
	"github.com/vytor/flashdeck/internal/logger"
	"github.com/vytor/flashdeck/internal/models"
	"github.com/vytor/flashdeck/internal/repository"
)

type seedDeck struct {
	input models.DeckInput
	cards []models.NewCard

	// legacyName is an earlier name of the deck, renamed on seeding.
	legacyName string
	// refill replaces the cards of an existing deck whose size drifted.
	refill     bool
}

func irregularVerb(spanish, forms, pronunciation, example string) models.NewCard {
	return models.NewCard{Front: spanish, Back: forms, Pronunciation: pronunciation, Examples: []string{example}}
}

var defaultDecks = []seedDeck{
	{
		input:      models.DeckInput{Name: "Irregular Verbs (1-15)", Description: "Essential irregular verbs in English with past and past participle forms - Part 1"},
		legacyName: "Irregular Verbs",
		refill:     true,
		cards:      []models.NewCard{
			irregularVerb("surgir, levantarse", "arise - arose - arisen", "ə-raɪz / ə-roʊz / ə-rɪz-ən", "A problem arose during the meeting."),
			irregularVerb("despertar(se)", "awake - awoke - awoken", "ə-weɪk / ə-woʊk / ə-woʊ-kən", "I awoke early this morning."),
			irregularVerb("ser, estar", "be - was/were - been", "bi / wʌz-wər / bɪn", "She has been here all day."),
			irregularVerb("soportar, dar a luz", "bear - bore - borne/born", "ber / bor / born", "She bore the pain bravely."),
			irregularVerb("golpear, vencer", "beat - beat - beaten", "bit / bit / bit-ən", "Our team beat theirs 3-1."),
			irregularVerb("llegar a ser, convertirse", "become - became - become", "bɪ-kʌm / bɪ-keɪm / bɪ-kʌm", "He became a doctor last year."),
			irregularVerb("empezar, comenzar", "begin - began - begun", "bɪ-gɪn / bɪ-gæn / bɪ-gʌn", "The meeting began at 9 AM."),
			irregularVerb("doblar, curvar", "bend - bent - bent", "bend / bent / bent", "He bent down to pick up the coin."),
			irregularVerb("apostar", "bet - bet - bet", "bet / bet / bet", "I bet you can't solve this puzzle."),
			irregularVerb("atar, encuadernar", "bind - bound - bound", "baɪnd / baʊnd / baʊnd", "The prisoner was bound with ropes."),
			irregularVerb("ofertar, pujar", "bid - bid - bid", "bɪd / bɪd / bɪd", "She bid farewell to her friends."),
			irregularVerb("morder", "bite - bit - bitten", "baɪt / bɪt / bɪt-ən", "The dog bit the mailman."),
			irregularVerb("sangrar", "bleed - bled - bled", "blid / bled / bled", "His wound bled for hours."),
			irregularVerb("soplar", "blow - blew - blown", "bloʊ / blu / bloʊn", "The wind blew all night."),
			irregularVerb("romper, quebrar", "break - broke - broken", "breɪk / broʊk / broʊ-kən", "She broke her phone yesterday."),
		},
	},
	{
		input: models.DeckInput{Name: "Verb Tenses", Description: "Common English verb tenses"},
		cards: []models.NewCard{
			{Front: "Yo camino", Back: "I walk", Pronunciation: "ai wok", Examples: []string{"I walk to school every day."}},
			{Front: "Él corrió", Back: "He ran", Pronunciation: "hi ran", Examples: []string{"He ran very fast."}},
			{Front: "Nosotros hemos comido", Back: "We have eaten", Pronunciation: "wi hav iten", Examples: []string{"We have eaten lunch already."}},
		},
	},
	{
		input: models.DeckInput{Name: "Business English", Description: "Essential business vocabulary"},
		cards: []models.NewCard{
			{Front: "Reunión", Back: "Meeting", Pronunciation: "miting", Examples: []string{"We have a meeting at 3 PM."}},
			{Front: "Informe", Back: "Report", Pronunciation: "riport", Examples: []string{"Please send me the report by Friday."}},
			{Front: "Presupuesto", Back: "Budget", Pronunciation: "bachet", Examples: []string{"The project is within budget."}},
		},
	},
	{
		input:      models.DeckInput{Name: "Irregular Verbs (16-30)", Description: "Additional essential irregular verbs with past and past participle forms - Part 2"},
		legacyName: "More Irregular Verbs",
		refill:     true,
		cards:      []models.NewCard{
			irregularVerb("criar", "breed - bred - bred", "brid / bred / bred", "He bred dogs for many years."),
			irregularVerb("traer, llevar", "bring - brought - brought", "bring / brot / brot", "She brought wine to the party."),
			irregularVerb("transmitir, radiar", "broadcast - broadcast - broadcast", "brod-cast / brod-cast / brod-cast", "They broadcast the news live."),
			irregularVerb("construir, edificar", "build - built - built", "bild / bilt / bilt", "We built a sandcastle."),
			irregularVerb("quemar", "burn - burnt/burned - burnt/burned", "bern / bernt or bernd / bernt or bernd", "I burnt the cookies by accident."),
			irregularVerb("estallar, reventar", "burst - burst - burst", "burst / burst / burst", "The balloon burst loudly."),
			irregularVerb("comprar", "buy - bought - bought", "bai / bot / bot", "He bought a new car."),
			irregularVerb("lanzar, arrojar", "cast - cast - cast", "cast / cast / cast", "The fisherman cast his net into the sea."),
			irregularVerb("atrapar, coger", "catch - caught - caught", "cach / cot / cot", "She caught a cold last week."),
			irregularVerb("venir", "come - came - come", "com / keim / com", "They came to visit us."),
			irregularVerb("costar", "cost - cost - cost", "cost / cost / cost", "This jacket cost a lot of money."),
			irregularVerb("cortar", "cut - cut - cut", "cut / cut / cut", "I cut my finger while cooking."),
			irregularVerb("elegir", "choose - chose - chosen", "chus / chous / chousen", "You chose the perfect gift."),
			irregularVerb("agarrarse, aferrarse", "cling - clung - clung", "kling / klung / klung", "The child clung to his mother's leg."),
			irregularVerb("arrastrarse, moverse sigilosamente", "creep - crept - crept", "krip / krept / krept", "The cat crept towards the bird."),
		},
	},
}

// SeedService installs the built-in decks.
type SeedService interface {
	// SeedDefaults brings the built-in decks up to date: legacy deck names
	// are renamed, verb decks whose size drifted are refilled and missing
	// decks are created. It returns how many decks were created.
	SeedDefaults(ctx context.Context) (int, error)
}

type seedService struct {
	deckRepo repository.DeckRepository
	cardRepo repository.CardRepository
}

// NewSeedService creates a new SeedService
func NewSeedService(deckRepo repository.DeckRepository, cardRepo repository.CardRepository) SeedService {
	return &seedService{deckRepo: deckRepo, cardRepo: cardRepo}
}

func seedCards(deckID string, seed seedDeck, now time.Time) []models.Card {
	cards := make([]models.Card, 0, len(seed.cards))
	for _, in := range seed.cards {
		cards = append(cards, newCard(deckID, in, now))
	}
	return cards
}

func (s *seedService) SeedDefaults(ctx context.Context) (int, error) {
	log := logger.FromContext(ctx).WithPrefix("seed")

	existing, err := s.deckRepo.List(ctx)
	if err != nil {
		log.Error("failed to list decks: %v", err)
		return 0, errors.NewInternalError(err)
	}
	byName := make(map[string]models.DeckSummary, len(existing))
	for _, d := range existing {
		byName[d.Name] = d
	}

	for _, seed := range defaultDecks {
		if err := s.renameLegacy(ctx, seed, byName); err != nil {
			return 0, err
		}
	}

	created := 0
	for _, seed := range defaultDecks {
		now := time.Now()

		if current, ok := byName[seed.input.Name]; ok {
			if !seed.refill || current.CardCount == len(seed.cards) {
				log.Debug("deck already present, skipping: %s", seed.input.Name)
				continue
			}
			if err := s.cardRepo.ReplaceDeckCards(ctx, current.ID, seedCards(current.ID, seed, now)); err != nil {
				log.Error("failed to refill deck %q: %v", current.Name, err)
				return created, errors.NewInternalError(err)
			}
			deck := current.Deck
			deck.UpdatedAt = now
			if err := s.deckRepo.Update(ctx, deck); err != nil {
				log.Error("failed to touch refilled deck %q: %v", deck.Name, err)
				return created, errors.NewInternalError(err)
			}
			log.Info("refilled deck %q: %d -> %d cards", deck.Name, current.CardCount, len(seed.cards))
			continue
		}

		deck := models.Deck{
			ID:          uuid.NewString(),
			Name:        seed.input.Name,
			Description: seed.input.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		cards := seedCards(deck.ID, seed, now)
		if err := s.deckRepo.InsertWithCards(ctx, deck, cards); err != nil {
			log.Error("failed to insert deck %q: %v", deck.Name, err)
			return created, errors.NewInternalError(err)
		}
		log.Info("seeded deck %q with %d cards", deck.Name, len(cards))
		created++
	}
	return created, nil
}

// renameLegacy moves a deck still carrying its legacy name to the current
// one, unless a deck with the current name already exists.
func (s *seedService) renameLegacy(ctx context.Context, seed seedDeck, byName map[string]models.DeckSummary) error {
	if seed.legacyName == "" {
		return nil
	}
	legacy, ok := byName[seed.legacyName]
	if !ok {
		return nil
	}
	log := logger.FromContext(ctx).WithPrefix("seed")
	if _, taken := byName[seed.input.Name]; taken {
		log.Debug("legacy deck %q kept, %q already exists", seed.legacyName, seed.input.Name)
		return nil
	}

	deck := legacy.Deck
	deck.Name = seed.input.Name
	deck.Description = seed.input.Description
	deck.UpdatedAt = time.Now()
	if err := s.deckRepo.Update(ctx, deck); err != nil {
		log.Error("failed to rename deck %q: %v", seed.legacyName, err)
		return errors.NewInternalError(err)
	}
	log.Info("renamed deck %q to %q", seed.legacyName, deck.Name)

	delete(byName, seed.legacyName)
	legacy.Deck = deck
	byName[deck.Name] = legacy
	return nil
}
