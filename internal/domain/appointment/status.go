package appointment

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusPending    Status = "pending"
	StatusConfirmed  Status = "confirmed"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

// Tabela de transições válidas. pending -> pending cobre a remarcação
// de um agendamento ainda não confirmado (mesma linha, novo horário).
var transitions = map[Status]map[Status]bool{
	StatusPending: {
		StatusPending:   true,
		StatusConfirmed: true,
		StatusCancelled: true,
	},
	StatusConfirmed: {
		StatusInProgress: true,
		StatusCancelled:  true,
		StatusPending:    true,
	},
	StatusInProgress: {
		StatusCompleted: true,
		StatusPending:   true,
	},
	StatusCompleted: {},
	StatusCancelled: {},
}

func InitialStatus() Status {
	return StatusPending
}

func IsValidStatus(s Status) bool {
	_, ok := transitions[s]
	return ok
}

// IsTerminal indica que nenhuma transição adicional é permitida.
func IsTerminal(s Status) bool {
	return s == StatusCompleted || s == StatusCancelled
}

// CanTransition valida uma transição contra a tabela. Nunca ajusta
// silenciosamente: transição fora da tabela é erro.
func CanTransition(from, to Status) error {
	allowed, ok := transitions[from]
	if !ok || !allowed[to] {
		return &InvalidTransitionError{From: from, To: to}
	}
	return nil
}
