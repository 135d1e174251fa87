package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pettrackr/internal/client"
	"pettrackr/internal/platform/logger"
	"pettrackr/internal/session"
)

type PetDirectory interface {
	ListPets(ctx context.Context, ownerID string) ([]client.Pet, error)
}

type FeedingSource interface {
	ListFeedingSchedules(ctx context.Context, ownerID, petID string) ([]client.FeedingSchedule, error)
}

type MedicationSource interface {
	ListMedications(ctx context.Context, ownerID, petID string) ([]client.Medication, error)
}

// Backend junta los tres puertos; *client.Client lo implementa.
type Backend interface {
	PetDirectory
	FeedingSource
	MedicationSource
}

type Options struct {
	// MaxConcurrency limita las cargas por mascota en vuelo; 0 = sin límite.
	MaxConcurrency int
	// FetchTimeout aplica a cada request; 0 = sin timeout propio.
	FetchTimeout time.Duration
	Logger       logger.Logger
}

type Aggregator struct {
	pets  PetDirectory
	feeds FeedingSource
	meds  MedicationSource

	maxConcurrency int
	fetchTimeout   time.Duration
	log            logger.Logger
}

func New(pets PetDirectory, feeds FeedingSource, meds MedicationSource, opts Options) *Aggregator {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	return &Aggregator{
		pets:           pets,
		feeds:          feeds,
		meds:           meds,
		maxConcurrency: opts.MaxConcurrency,
		fetchTimeout:   opts.FetchTimeout,
		log:            log,
	}
}

func NewFromBackend(b Backend, opts Options) *Aggregator {
	return New(b, b, b, opts)
}

// LoadDashboard trae las mascotas del owner y, por cada una, sus comidas y
// medicaciones en paralelo; devuelve la agenda ordenada por hora.
//
// Errores: ErrSessionExpired (401 en la lista de mascotas), ErrConnectivity
// (cualquier otra falla de la lista). 404 en la lista = dashboard vacío.
// Las fallas por mascota nunca se propagan: esa mascota queda sin entradas
// de ese tipo y la falla se anota en Absorbed.
func (a *Aggregator) LoadDashboard(ctx context.Context, ownerID string) (Dashboard, error) {
	if strings.TrimSpace(ownerID) == "" {
		return Dashboard{}, ErrInvalidOwner
	}

	pets, err := fetch(ctx, a.fetchTimeout, func(ctx context.Context) ([]client.Pet, error) {
		return a.pets.ListPets(ctx, ownerID)
	})
	switch {
	case errors.Is(err, client.ErrNotFound):
		return empty(), nil
	case errors.Is(err, client.ErrUnauthorized):
		return Dashboard{}, ErrSessionExpired
	case err != nil:
		return Dashboard{}, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}
	if len(pets) == 0 {
		return empty(), nil
	}

	feeds := make([]Result[client.FeedingSchedule], len(pets))
	meds := make([]Result[client.Medication], len(pets))

	// Cada tarea escribe solo su slot y nunca devuelve error al grupo:
	// una mascota con problemas no cancela a las demás.
	var g errgroup.Group
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}
	for i, p := range pets {
		g.Go(func() error {
			items, err := fetch(ctx, a.fetchTimeout, func(ctx context.Context) ([]client.FeedingSchedule, error) {
				return a.feeds.ListFeedingSchedules(ctx, ownerID, p.ID)
			})
			feeds[i] = Result[client.FeedingSchedule]{Items: items, Err: err}
			return nil
		})
		g.Go(func() error {
			items, err := fetch(ctx, a.fetchTimeout, func(ctx context.Context) ([]client.Medication, error) {
				return a.meds.ListMedications(ctx, ownerID, p.ID)
			})
			meds[i] = Result[client.Medication]{Items: items, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	// si el caller canceló, lo que juntamos no es confiable
	if err := ctx.Err(); err != nil {
		return Dashboard{}, fmt.Errorf("%w: %w", ErrConnectivity, err)
	}

	d := Dashboard{
		Pets:   pets,
		Agenda: merge(pets, feeds, meds),
	}
	d.Absorbed = a.absorbed(ownerID, pets, feeds, meds)
	return d, nil
}

// LoadForSession toma el owner de la sesión. Si el server dice que la sesión
// venció, la expira para que el caller vuelva a autenticar.
func (a *Aggregator) LoadForSession(ctx context.Context, s *session.Session) (Dashboard, error) {
	if s == nil {
		return Dashboard{}, ErrSessionExpired
	}
	// una sola lectura: Expire puede correr en paralelo (reminders)
	owner, ok := s.Owner()
	if !ok {
		return Dashboard{}, ErrSessionExpired
	}

	d, err := a.LoadDashboard(ctx, owner.ID)
	if errors.Is(err, ErrSessionExpired) {
		s.Expire()
	}
	return d, err
}

// merge concatena todas las comidas (en el orden de las mascotas) y después
// todas las medicaciones, y ordena estable por Time con comparación de strings.
// "HH:MM" con ceros a la izquierda ordena igual que cronológicamente; un Time
// vacío queda primero.
func merge(pets []client.Pet, feeds []Result[client.FeedingSchedule], meds []Result[client.Medication]) []AgendaItem {
	items := make([]AgendaItem, 0)

	for i, p := range pets {
		for _, f := range feeds[i].OrEmpty() {
			items = append(items, AgendaItem{
				Kind:    EntryFeeding,
				PetID:   p.ID,
				PetName: p.Name,
				Time:    f.Time,
				Feeding: &f,
			})
		}
	}
	for i, p := range pets {
		for _, m := range meds[i].OrEmpty() {
			items = append(items, AgendaItem{
				Kind:       EntryMedication,
				PetID:      p.ID,
				PetName:    p.Name,
				Time:       m.TimeToAdminister,
				Medication: &m,
			})
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Time < items[j].Time
	})
	return items
}

func (a *Aggregator) absorbed(ownerID string, pets []client.Pet, feeds []Result[client.FeedingSchedule], meds []Result[client.Medication]) []AbsorbedFailure {
	var out []AbsorbedFailure
	note := func(petID string, kind EntryKind, err error) {
		out = append(out, AbsorbedFailure{PetID: petID, Kind: kind, Err: err})
		a.log.Warn("dashboard.partial_data_loss", map[string]any{
			"owner_id": ownerID,
			"pet_id":   petID,
			"kind":     string(kind),
			"error":    err,
		})
	}

	for i, p := range pets {
		if err := feeds[i].Err; err != nil {
			note(p.ID, EntryFeeding, err)
		}
		if err := meds[i].Err; err != nil {
			note(p.ID, EntryMedication, err)
		}
	}
	return out
}

func fetch[T any](ctx context.Context, timeout time.Duration, fn func(context.Context) ([]T, error)) ([]T, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	items, err := fn(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}
