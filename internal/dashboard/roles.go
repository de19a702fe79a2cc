package dashboard

import (
	"context"

	"github.com/rs/zerolog"
)

// Panel identifiers shared by the role configurations.
const (
	PanelOverview         PanelID = "overview"
	PanelDepartmentList   PanelID = "department-list"
	PanelDepartmentWizard PanelID = "department-wizard"
	PanelDoctorList       PanelID = "doctor-list"
	PanelDoctorWizard     PanelID = "doctor-wizard"
	PanelPatientList      PanelID = "patient-list"
	PanelPatientWizard    PanelID = "patient-wizard"
	PanelStaffList        PanelID = "staff-list"
	PanelStaffWizard      PanelID = "staff-wizard"
	PanelApprovalList     PanelID = "approval-list"
	PanelReports          PanelID = "reports"
	PanelPrescriptionList PanelID = "prescription-list"
	PanelPrescriptionForm PanelID = "prescription-wizard"
	PanelAppointmentList  PanelID = "appointment-list"
	PanelAppointmentBook  PanelID = "appointment-wizard"
	PanelMeetings         PanelID = "meetings"
	PanelProfile          PanelID = "profile"
)

// ResourceOps are the outbound operations the engine needs for one
// resource. They are the engine's only view of the CRUD collaborators.
type ResourceOps struct {
	Fetch  FetchFunc
	Create SaveFunc
	Update UpdateFunc
}

// Deps carries the collaborator operations and logger the role
// configurations close over. Services are injected here once at startup;
// panels receive data through these functions, never through package-level
// state.
type Deps struct {
	Log           zerolog.Logger
	Departments   ResourceOps
	Staff         ResourceOps
	Doctors       ResourceOps
	Patients      ResourceOps
	Prescriptions ResourceOps
	Appointments  ResourceOps
	Approvals     ResourceOps
}

// Configs builds the three role-scoped dashboard configurations over one
// set of collaborator operations.
func Configs(deps Deps) map[Role]*Config {
	return map[Role]*Config{
		RoleAdmin:   AdminConfig(deps),
		RoleDoctor:  DoctorConfig(deps),
		RolePatient: PatientConfig(deps),
	}
}

// AdminConfig is the admin dashboard: full management of departments,
// staff, doctors and patients, the account approval queue, and reports.
func AdminConfig(deps Deps) *Config {
	reg := NewViewRegistry(FlatKey("dashboard"), PanelOverview)
	reg.Register(GroupKey("departments", "list"), PanelDepartmentList)
	reg.Register(GroupKey("departments", "add"), PanelDepartmentWizard)
	reg.Register(GroupKey("doctors", "list"), PanelDoctorList)
	reg.Register(GroupKey("doctors", "add"), PanelDoctorWizard)
	reg.Register(GroupKey("patients", "list"), PanelPatientList)
	reg.Register(GroupKey("patients", "add"), PanelPatientWizard)
	reg.Register(GroupKey("staff", "list"), PanelStaffList)
	reg.Register(GroupKey("staff", "add"), PanelStaffWizard)
	reg.Register(GroupKey("approvals", "list"), PanelApprovalList)
	reg.Register(FlatKey("reports"), PanelReports)

	full := Capabilities{View: true, Create: true, Edit: true, Deactivate: true}
	return &Config{
		Role:     RoleAdmin,
		Registry: reg,
		Caps: CapabilitySet{
			"departments":   full,
			"doctors":       full,
			"patients":      full,
			"staff":         full,
			"approvals":     {View: true, Edit: true},
			"prescriptions": {View: true},
			"appointments":  {View: true},
		},
		Wizards: map[PanelID]WizardBuilder{
			PanelDepartmentWizard: DepartmentWizard(deps.Departments.Create),
			PanelDoctorWizard:     DoctorIntakeWizard(deps),
			PanelPatientWizard:    PatientIntakeWizard(deps.Patients.Create),
			PanelStaffWizard:      StaffWizard(deps.Staff.Create),
		},
		Lists: map[PanelID]ListBuilder{
			PanelDepartmentList: listBuilder(deps.Log, deps.Departments, ListScreen{
				SearchFields: []string{"name", "description", "head"},
				FilterField:  "status",
			}),
			PanelDoctorList: listBuilder(deps.Log, deps.Doctors, ListScreen{
				SearchFields: []string{"firstName", "lastName", "email", "specialization"},
				FilterField:  "status",
			}),
			PanelPatientList: listBuilder(deps.Log, deps.Patients, ListScreen{
				SearchFields: []string{"firstName", "lastName", "email", "phone"},
				FilterField:  "status",
			}),
			PanelStaffList: listBuilder(deps.Log, deps.Staff, ListScreen{
				SearchFields: []string{"firstName", "lastName", "roleTitle", "email"},
				FilterField:  "status",
			}),
			PanelApprovalList: listBuilder(deps.Log, deps.Approvals, ListScreen{
				SearchFields: []string{"fullName", "email", "requestedRole"},
				FilterField:  "status",
			}),
		},
	}
}

// DoctorConfig is the doctor dashboard: the doctor's patients and
// appointments, prescription writing, and telehealth meetings.
func DoctorConfig(deps Deps) *Config {
	reg := NewViewRegistry(FlatKey("dashboard"), PanelOverview)
	reg.Register(GroupKey("patients", "list"), PanelPatientList)
	reg.Register(GroupKey("appointments", "list"), PanelAppointmentList)
	reg.Register(GroupKey("prescriptions", "list"), PanelPrescriptionList)
	reg.Register(GroupKey("prescriptions", "add"), PanelPrescriptionForm)
	reg.Register(FlatKey("meetings"), PanelMeetings)

	return &Config{
		Role:     RoleDoctor,
		Registry: reg,
		Caps: CapabilitySet{
			"patients":      {View: true, Edit: true},
			"prescriptions": {View: true, Create: true},
			"appointments":  {View: true, Edit: true},
		},
		Wizards: map[PanelID]WizardBuilder{
			PanelPrescriptionForm: PrescriptionWizard(deps),
		},
		Lists: map[PanelID]ListBuilder{
			PanelPatientList: listBuilder(deps.Log, deps.Patients, ListScreen{
				SearchFields: []string{"firstName", "lastName", "email"},
				FilterField:  "status",
			}),
			PanelAppointmentList: listBuilder(deps.Log, deps.Appointments, ListScreen{
				SearchFields: []string{"patientName", "reason"},
				FilterField:  "status",
			}),
			PanelPrescriptionList: listBuilder(deps.Log, deps.Prescriptions, ListScreen{
				SearchFields: []string{"patientName", "medication", "diagnosis"},
				FilterField:  "status",
			}),
		},
	}
}

// PatientConfig is the patient dashboard: the patient's own appointments
// and prescriptions, appointment booking, and profile.
func PatientConfig(deps Deps) *Config {
	reg := NewViewRegistry(FlatKey("dashboard"), PanelOverview)
	reg.Register(GroupKey("appointments", "list"), PanelAppointmentList)
	reg.Register(GroupKey("appointments", "book"), PanelAppointmentBook)
	reg.Register(GroupKey("prescriptions", "list"), PanelPrescriptionList)
	reg.Register(FlatKey("profile"), PanelProfile)

	return &Config{
		Role:     RolePatient,
		Registry: reg,
		Caps: CapabilitySet{
			"appointments":  {View: true, Create: true},
			"prescriptions": {View: true},
			"patients":      {View: true, Edit: true},
		},
		Wizards: map[PanelID]WizardBuilder{
			PanelAppointmentBook: AppointmentWizard(deps),
		},
		Lists: map[PanelID]ListBuilder{
			PanelAppointmentList: listBuilder(deps.Log, deps.Appointments, ListScreen{
				SearchFields: []string{"doctorName", "reason"},
				FilterField:  "status",
			}),
			PanelPrescriptionList: listBuilder(deps.Log, deps.Prescriptions, ListScreen{
				SearchFields: []string{"doctorName", "medication"},
				FilterField:  "status",
			}),
		},
	}
}

func listBuilder(log zerolog.Logger, ops ResourceOps, screen ListScreen) ListBuilder {
	return func() *ListView {
		return NewListView(screen, ops.Fetch, ops.Update, log)
	}
}

// DepartmentWizard is the single-step department form. Only the name is
// required; an empty status is dropped rather than sent as "".
func DepartmentWizard(save SaveFunc) WizardBuilder {
	return func(ctx context.Context) (*Wizard, error) {
		steps := []StepDef{{
			Name:     "Department Details",
			Required: []string{"name"},
			Initial: FieldSet{
				"name":        "",
				"description": "",
				"head":        "",
				"phone":       "",
				"email":       "",
				"status":      "",
			},
		}}
		coerce := Coercions{OptionalEnum: []string{"status"}}
		return NewWizard(steps, coerce, save), nil
	}
}

// DoctorIntakeWizard is the two-step doctor intake form: Personal Info then
// Professional Details. The departments dropdown is populated from a
// snapshot fetched when the panel mounts, injected into the wizard rather
// than read from shared state.
func DoctorIntakeWizard(deps Deps) WizardBuilder {
	return func(ctx context.Context) (*Wizard, error) {
		departments, err := deps.Departments.Fetch(ctx)
		if err != nil {
			// The form must still open; the dropdown renders empty and the
			// list panel surfaces its own load errors.
			deps.Log.Warn().Err(err).Msg("departments snapshot unavailable for doctor form")
			departments = nil
		}
		steps := []StepDef{
			{
				Name:     "Personal Info",
				Required: []string{"firstName", "lastName", "email", "phone"},
				Initial: FieldSet{
					"firstName": "",
					"lastName":  "",
					"email":     "",
					"phone":     "",
					"gender":    "",
					"bio":       "",
				},
			},
			{
				Name:     "Professional Details",
				Required: []string{"specialization", "licenseNumber", "departmentId"},
				Initial: FieldSet{
					"specialization":  "",
					"qualification":   "",
					"licenseNumber":   "",
					"departmentId":    "",
					"experienceYears": "",
					"consultationFee": "",
					"services":        []any{},
					"status":          "",
				},
			},
		}
		coerce := Coercions{
			Numeric:      []string{"experienceYears", "consultationFee"},
			OptionalEnum: []string{"gender", "status"},
		}
		w := NewWizard(steps, coerce, deps.Doctors.Create)
		w.Options["departments"] = departments
		return w, nil
	}
}

// PatientIntakeWizard is the two-step patient intake form: Personal Info
// then Medical Info with a one-level-nested emergency contact and a
// multi-select allergy list.
func PatientIntakeWizard(save SaveFunc) WizardBuilder {
	return func(ctx context.Context) (*Wizard, error) {
		steps := []StepDef{
			{
				Name:     "Personal Info",
				Required: []string{"firstName", "lastName", "email", "phone"},
				Initial: FieldSet{
					"firstName":   "",
					"lastName":    "",
					"email":       "",
					"phone":       "",
					"dateOfBirth": "",
					"gender":      "",
					"address":     "",
				},
			},
			{
				Name:     "Medical Info",
				Required: []string{"emergencyContact.name", "emergencyContact.phone"},
				Initial: FieldSet{
					"bloodGroup": "",
					"allergies":  []any{},
					"emergencyContact": FieldSet{
						"name":     "",
						"phone":    "",
						"relation": "",
					},
				},
			},
		}
		coerce := Coercions{OptionalEnum: []string{"gender", "bloodGroup"}}
		return NewWizard(steps, coerce, save), nil
	}
}

// StaffWizard is the single-step staff form.
func StaffWizard(save SaveFunc) WizardBuilder {
	return func(ctx context.Context) (*Wizard, error) {
		steps := []StepDef{{
			Name:     "Staff Details",
			Required: []string{"firstName", "lastName", "roleTitle"},
			Initial: FieldSet{
				"firstName":    "",
				"lastName":     "",
				"roleTitle":    "",
				"departmentId": "",
				"email":        "",
				"phone":        "",
				"status":       "",
			},
		}}
		coerce := Coercions{OptionalEnum: []string{"status"}}
		return NewWizard(steps, coerce, save), nil
	}
}

// PrescriptionWizard is the doctor's prescription form. The patient
// dropdown is an injected snapshot, as with the doctor intake form.
func PrescriptionWizard(deps Deps) WizardBuilder {
	return func(ctx context.Context) (*Wizard, error) {
		patients, err := deps.Patients.Fetch(ctx)
		if err != nil {
			deps.Log.Warn().Err(err).Msg("patients snapshot unavailable for prescription form")
			patients = nil
		}
		steps := []StepDef{{
			Name:     "Prescription Details",
			Required: []string{"patientId", "medication", "dosage"},
			Initial: FieldSet{
				"patientId":    "",
				"diagnosis":    "",
				"medication":   "",
				"dosage":       "",
				"frequency":    "",
				"durationDays": "",
				"notes":        "",
			},
		}}
		coerce := Coercions{Numeric: []string{"durationDays"}}
		w := NewWizard(steps, coerce, deps.Prescriptions.Create)
		w.Options["patients"] = patients
		return w, nil
	}
}

// AppointmentWizard is the patient's booking form. The doctors dropdown is
// an injected snapshot.
func AppointmentWizard(deps Deps) WizardBuilder {
	return func(ctx context.Context) (*Wizard, error) {
		doctors, err := deps.Doctors.Fetch(ctx)
		if err != nil {
			deps.Log.Warn().Err(err).Msg("doctors snapshot unavailable for booking form")
			doctors = nil
		}
		steps := []StepDef{{
			Name:     "Book Appointment",
			Required: []string{"doctorId", "scheduledAt", "reason"},
			Initial: FieldSet{
				"doctorId":        "",
				"scheduledAt":     "",
				"reason":          "",
				"durationMinutes": "",
				"isTelehealth":    false,
				"notes":           "",
			},
		}}
		coerce := Coercions{Numeric: []string{"durationMinutes"}}
		w := NewWizard(steps, coerce, deps.Appointments.Create)
		w.Options["doctors"] = doctors
		return w, nil
	}
}
