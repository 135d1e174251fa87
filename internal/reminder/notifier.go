package reminder

import (
	"context"
	"fmt"
	"strings"

	"pettrackr/internal/dashboard"
	"pettrackr/internal/platform/logger"
)

// Notifier recibe cada recordatorio vencido.
type Notifier interface {
	Notify(ctx context.Context, item dashboard.AgendaItem) error
}

// LogNotifier es el notifier por defecto: una línea de log por recordatorio.
type LogNotifier struct {
	log logger.Logger
}

func NewLogNotifier(log logger.Logger) *LogNotifier {
	if log == nil {
		log = logger.NewNop()
	}
	return &LogNotifier{log: log}
}

func (n *LogNotifier) Notify(_ context.Context, item dashboard.AgendaItem) error {
	n.log.Info("reminder.due", map[string]any{
		"pet_id":   item.PetID,
		"pet_name": item.PetName,
		"kind":     string(item.Kind),
		"time":     item.Time,
		"detail":   Describe(item),
	})
	return nil
}

// Describe arma el texto corto de una entrada de agenda ("1 CUPS kibble",
// "Apoquel 5.4 MG (daily)").
func Describe(item dashboard.AgendaItem) string {
	switch {
	case item.Feeding != nil:
		f := item.Feeding
		return strings.TrimSpace(fmt.Sprintf("%g %s %s", f.Quantity, f.QuantityUnit, f.FoodType))
	case item.Medication != nil:
		m := item.Medication
		s := fmt.Sprintf("%s %g %s", m.Name, m.DosageAmount, m.DosageUnit)
		if m.Frequency != "" {
			s += " (" + m.Frequency + ")"
		}
		return s
	default:
		return ""
	}
}
