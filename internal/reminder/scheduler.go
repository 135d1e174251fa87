package reminder

import (
	"context"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"pettrackr/internal/dashboard"
	"pettrackr/internal/platform/logger"
	"pettrackr/internal/platform/timeofday"
	"pettrackr/internal/session"
)

// EveryMinute dispara al inicio de cada minuto, alineado con las horas "HH:MM".
const EveryMinute = "* * * * *"

const dateLayout = "2006-01-02"

// Loader es lo que el scheduler necesita del agregador.
type Loader interface {
	LoadForSession(ctx context.Context, s *session.Session) (dashboard.Dashboard, error)
}

type Options struct {
	Spec        string        // default EveryMinute
	TickTimeout time.Duration // default 30s
	Location    *time.Location
	Logger      logger.Logger
}

// Scheduler carga la agenda en cada tick y notifica las entradas de ese minuto.
// Si la sesión vence, se detiene solo y cierra Done().
type Scheduler struct {
	cron     *cron.Cron
	spec     string
	timeout  time.Duration
	loader   Loader
	sess     *session.Session
	notifier Notifier
	log      logger.Logger
	now      func() time.Time

	mu       sync.Mutex
	lastSlot string

	done     chan struct{}
	stopOnce sync.Once
}

func New(loader Loader, sess *session.Session, notifier Notifier, opts Options) *Scheduler {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	if notifier == nil {
		notifier = NewLogNotifier(log)
	}
	spec := opts.Spec
	if spec == "" {
		spec = EveryMinute
	}
	timeout := opts.TickTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}

	return &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		spec:     spec,
		timeout:  timeout,
		loader:   loader,
		sess:     sess,
		notifier: notifier,
		log:      log.With(map[string]any{"component": "reminders"}),
		now:      func() time.Time { return time.Now().In(loc) },
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.run); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("reminders started", map[string]any{"spec": s.spec})
	return nil
}

// Stop espera a que termine el tick en curso o a que venza ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.halt()
	select {
	case <-s.cron.Stop().Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done se cierra cuando el scheduler se detiene (Stop o sesión vencida).
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

func (s *Scheduler) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	_, _ = s.Tick(ctx)
}

// Tick carga la agenda y notifica lo que vence en el minuto actual.
// Cada minuto se procesa una sola vez aunque el tick se repita.
func (s *Scheduler) Tick(ctx context.Context) (int, error) {
	now := s.now()
	slot := now.Format(dateLayout) + " " + timeofday.Of(now)

	s.mu.Lock()
	if slot == s.lastSlot {
		s.mu.Unlock()
		return 0, nil
	}
	s.mu.Unlock()

	d, err := s.loader.LoadForSession(ctx, s.sess)
	if err != nil {
		if dashboard.Kind(err) == dashboard.ErrorSessionExpired {
			s.log.Warn("session expired, stopping reminders", map[string]any{"error": err})
			s.halt()
			go s.cron.Stop()
			return 0, err
		}
		// conectividad: se reintenta en el próximo tick
		s.log.Error("loading agenda failed", map[string]any{"error": err})
		return 0, err
	}

	s.mu.Lock()
	s.lastSlot = slot
	s.mu.Unlock()

	sent := 0
	for _, item := range Due(d.Agenda, now) {
		if err := s.notifier.Notify(ctx, item); err != nil {
			s.log.Warn("notify failed", map[string]any{"pet_id": item.PetID, "kind": string(item.Kind), "error": err})
			continue
		}
		sent++
	}
	return sent, nil
}

func (s *Scheduler) halt() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Due filtra las entradas cuya hora es el minuto de now. Las medicaciones
// fuera de su rango [startDate, endDate] no se recuerdan.
func Due(agenda []dashboard.AgendaItem, now time.Time) []dashboard.AgendaItem {
	hhmm := timeofday.Of(now)
	today := now.Format(dateLayout)

	out := make([]dashboard.AgendaItem, 0)
	for _, item := range agenda {
		if item.Time != hhmm {
			continue
		}
		if m := item.Medication; m != nil {
			// fechas YYYY-MM-DD: comparar strings alcanza
			if m.StartDate != "" && today < m.StartDate {
				continue
			}
			if m.EndDate != nil && *m.EndDate != "" && today > *m.EndDate {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
