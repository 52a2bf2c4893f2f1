package api

import (
	"time"

	"github.com/google/uuid"
)

// Segment defines a public type used by ia-crm APIs.
//
// Segment instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Segment string

const (
	// SegmentClinicaMedica is an exported constant or variable used by the CRM client.
	SegmentClinicaMedica Segment = "clinica_medica"
	// SegmentClinicaOdontologica is an exported constant or variable used by the CRM client.
	SegmentClinicaOdontologica Segment = "clinica_odontologica"
	// SegmentClinicaEstetica is an exported constant or variable used by the CRM client.
	SegmentClinicaEstetica Segment = "clinica_estetica"
	// SegmentLaboratorio is an exported constant or variable used by the CRM client.
	SegmentLaboratorio Segment = "laboratorio"
	// SegmentHospital is an exported constant or variable used by the CRM client.
	SegmentHospital Segment = "hospital"
	// SegmentMedicoAutonomo is an exported constant or variable used by the CRM client.
	SegmentMedicoAutonomo Segment = "medico_autonomo"
	// SegmentDentistaAutonomo is an exported constant or variable used by the CRM client.
	SegmentDentistaAutonomo Segment = "dentista_autonomo"
	// SegmentPsicologo is an exported constant or variable used by the CRM client.
	SegmentPsicologo Segment = "psicologo"
	// SegmentFisioterapeuta is an exported constant or variable used by the CRM client.
	SegmentFisioterapeuta Segment = "fisioterapeuta"
	// SegmentNutricionista is an exported constant or variable used by the CRM client.
	SegmentNutricionista Segment = "nutricionista"
	// SegmentFarmacia is an exported constant or variable used by the CRM client.
	SegmentFarmacia Segment = "farmacia"
	// SegmentEcommerceSaude is an exported constant or variable used by the CRM client.
	SegmentEcommerceSaude Segment = "ecommerce_saude"
	// SegmentEquipamentosMedicos is an exported constant or variable used by the CRM client.
	SegmentEquipamentosMedicos Segment = "equipamentos_medicos"
	// SegmentPlanoSaude is an exported constant or variable used by the CRM client.
	SegmentPlanoSaude Segment = "plano_saude"
	// SegmentOutro is an exported constant or variable used by the CRM client.
	SegmentOutro Segment = "outro"
)

// AppointmentStatus defines a public type used by ia-crm APIs.
//
// AppointmentStatus instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AppointmentStatus string

const (
	// AppointmentPending is an exported constant or variable used by the CRM client.
	AppointmentPending AppointmentStatus = "pending"
	// AppointmentConfirmed is an exported constant or variable used by the CRM client.
	AppointmentConfirmed AppointmentStatus = "confirmed"
	// AppointmentCancelled is an exported constant or variable used by the CRM client.
	AppointmentCancelled AppointmentStatus = "cancelled"
	// AppointmentCompleted is an exported constant or variable used by the CRM client.
	AppointmentCompleted AppointmentStatus = "completed"
	// AppointmentBlocked is an exported constant or variable used by the CRM client.
	AppointmentBlocked AppointmentStatus = "blocked"
)

// Shift defines a public type used by ia-crm APIs.
//
// Shift instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Shift string

const (
	// ShiftMorning is an exported constant or variable used by the CRM client.
	ShiftMorning Shift = "morning"
	// ShiftAfternoon is an exported constant or variable used by the CRM client.
	ShiftAfternoon Shift = "afternoon"
)

// ClientRecord defines a public type used by ia-crm APIs.
//
// ClientRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClientRecord struct {
	ID                   uuid.UUID `json:"id"`
	FirstName            string    `json:"first_name"`
	LastName             string    `json:"last_name"`
	Phone                string    `json:"phone"`
	Email                *string   `json:"email"`
	CompanyName          *string   `json:"company_name"`
	Segment              *Segment  `json:"segment"`
	MonthlyBudget        *float64  `json:"monthly_budget"`
	MainMarketingProblem *string   `json:"main_marketing_problem"`
	Notes                *string   `json:"notes"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// ClientCreate defines a public type used by ia-crm APIs.
//
// ClientCreate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClientCreate struct {
	FirstName            string   `json:"first_name"`
	LastName             string   `json:"last_name"`
	Phone                string   `json:"phone"`
	Email                *string  `json:"email,omitempty"`
	CompanyName          *string  `json:"company_name,omitempty"`
	Segment              *Segment `json:"segment,omitempty"`
	MonthlyBudget        *float64 `json:"monthly_budget,omitempty"`
	MainMarketingProblem *string  `json:"main_marketing_problem,omitempty"`
	Notes                *string  `json:"notes,omitempty"`
}

// ClientUpdate defines a public type used by ia-crm APIs.
//
// ClientUpdate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ClientUpdate struct {
	FirstName            *string  `json:"first_name,omitempty"`
	LastName             *string  `json:"last_name,omitempty"`
	Phone                *string  `json:"phone,omitempty"`
	Email                *string  `json:"email,omitempty"`
	CompanyName          *string  `json:"company_name,omitempty"`
	Segment              *Segment `json:"segment,omitempty"`
	MonthlyBudget        *float64 `json:"monthly_budget,omitempty"`
	MainMarketingProblem *string  `json:"main_marketing_problem,omitempty"`
	Notes                *string  `json:"notes,omitempty"`
}

// AppointmentRecord defines a public type used by ia-crm APIs.
//
// AppointmentRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AppointmentRecord struct {
	ID                 uuid.UUID         `json:"id"`
	ClientID           uuid.UUID         `json:"client_id"`
	ScheduledAt        time.Time         `json:"scheduled_at"`
	DurationMinutes    int               `json:"duration_minutes"`
	MeetingType        *string           `json:"meeting_type"`
	Status             AppointmentStatus `json:"status"`
	Notes              *string           `json:"notes"`
	CancelledAt        *time.Time        `json:"cancelled_at"`
	CancellationReason *string           `json:"cancellation_reason"`
	CreatedAt          time.Time         `json:"created_at"`
	UpdatedAt          time.Time         `json:"updated_at"`
}

// AppointmentCreate defines a public type used by ia-crm APIs.
//
// AppointmentCreate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AppointmentCreate struct {
	ClientID        uuid.UUID `json:"client_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes,omitempty"`
	MeetingType     *string   `json:"meeting_type,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
}

// AppointmentUpdate defines a public type used by ia-crm APIs.
//
// AppointmentUpdate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AppointmentUpdate struct {
	ScheduledAt        *time.Time         `json:"scheduled_at,omitempty"`
	DurationMinutes    *int               `json:"duration_minutes,omitempty"`
	MeetingType        *string            `json:"meeting_type,omitempty"`
	Notes              *string            `json:"notes,omitempty"`
	Status             *AppointmentStatus `json:"status,omitempty"`
	CancellationReason *string            `json:"cancellation_reason,omitempty"`
}

// UserRecord defines a public type used by ia-crm APIs.
//
// UserRecord instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserRecord struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCreate defines a public type used by ia-crm APIs.
//
// UserCreate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserCreate struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserUpdate defines a public type used by ia-crm APIs.
//
// UserUpdate instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type UserUpdate struct {
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// ChatReply defines a public type used by ia-crm APIs.
//
// ChatReply instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChatReply struct {
	Response         string  `json:"response"`
	SessionID        string  `json:"session_id"`
	ConversationMode *string `json:"conversation_mode"`
}

// ChatResetResult defines a public type used by ia-crm APIs.
//
// ChatResetResult instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type ChatResetResult struct {
	Message   string `json:"message"`
	SessionID string `json:"session_id"`
}
