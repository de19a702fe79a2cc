package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/hms/hms/internal/dashboard"
	"github.com/hms/hms/internal/domain/approval"
	"github.com/hms/hms/internal/domain/clinical"
	"github.com/hms/hms/internal/domain/directory"
	"github.com/hms/hms/internal/domain/identity"
	"github.com/hms/hms/internal/domain/scheduling"
	"github.com/hms/hms/internal/platform/auth"
	"github.com/hms/hms/internal/platform/export"
)

// Dashboard lists are operator-facing; one page of this size covers them
// without pagination plumbing in the engine.
const dashboardFetchLimit = 500

// toRecords converts domain models to the dashboard's opaque record form
// through their JSON representation, so the dashboard sees the same shapes
// the REST API serves.
func toRecords(v any) ([]dashboard.Record, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out []dashboard.Record
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// decodeInto overlays a generic payload onto a domain model. Absent keys
// leave the model's fields untouched, which gives partial-update semantics
// for edits.
func decodeInto(payload map[string]any, dst any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}

func callerID(ctx context.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(auth.UserIDFromContext(ctx))
	if err != nil {
		return uuid.Nil, fmt.Errorf("caller has no valid subject id: %w", err)
	}
	return id, nil
}

// dashboardDeps wires the domain services into the dashboard engine's
// resource operations. The adapters re-read the caller's identity from the
// request context, so the same wiring serves all three role dashboards.
func dashboardDeps(
	log zerolog.Logger,
	dirSvc *directory.Service,
	idSvc *identity.Service,
	clinSvc *clinical.Service,
	schedSvc *scheduling.Service,
	apprSvc *approval.Service,
) dashboard.Deps {
	return dashboard.Deps{
		Log: log,

		Departments: dashboard.ResourceOps{
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				items, _, err := dirSvc.ListDepartments(ctx, dashboardFetchLimit, 0)
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var d directory.Department
				if err := decodeInto(record, &d); err != nil {
					return err
				}
				return dirSvc.CreateDepartment(ctx, &d)
			},
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				deptID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				d, err := dirSvc.GetDepartment(ctx, deptID)
				if err != nil {
					return err
				}
				if err := decodeInto(fields, d); err != nil {
					return err
				}
				d.ID = deptID
				return dirSvc.UpdateDepartment(ctx, d)
			},
		},

		Staff: dashboard.ResourceOps{
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				items, _, err := dirSvc.ListStaff(ctx, dashboardFetchLimit, 0)
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var m directory.Staff
				if err := decodeInto(record, &m); err != nil {
					return err
				}
				return dirSvc.CreateStaff(ctx, &m)
			},
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				staffID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				m, err := dirSvc.GetStaff(ctx, staffID)
				if err != nil {
					return err
				}
				if err := decodeInto(fields, m); err != nil {
					return err
				}
				m.ID = staffID
				return dirSvc.UpdateStaff(ctx, m)
			},
		},

		Doctors: dashboard.ResourceOps{
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				items, _, err := idSvc.ListDoctors(ctx, dashboardFetchLimit, 0)
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var d identity.Doctor
				if err := decodeInto(record, &d); err != nil {
					return err
				}
				return idSvc.CreateDoctor(ctx, &d)
			},
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				docID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				d, err := idSvc.GetDoctor(ctx, docID)
				if err != nil {
					return err
				}
				if err := decodeInto(fields, d); err != nil {
					return err
				}
				d.ID = docID
				return idSvc.UpdateDoctor(ctx, d)
			},
		},

		Patients: dashboard.ResourceOps{
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				items, _, err := idSvc.ListPatients(ctx, dashboardFetchLimit, 0)
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var p identity.Patient
				if err := decodeInto(record, &p); err != nil {
					return err
				}
				return idSvc.CreatePatient(ctx, &p)
			},
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				patID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				p, err := idSvc.GetPatient(ctx, patID)
				if err != nil {
					return err
				}
				if err := decodeInto(fields, p); err != nil {
					return err
				}
				p.ID = patID
				return idSvc.UpdatePatient(ctx, p)
			},
		},

		Prescriptions: dashboard.ResourceOps{
			// Prescriptions are scoped by the caller's role: doctors and
			// patients see their own, admins see everything.
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				var (
					items []*clinical.Prescription
					err   error
				)
				switch auth.RoleFromContext(ctx) {
				case "doctor":
					uid, idErr := callerID(ctx)
					if idErr != nil {
						return nil, idErr
					}
					items, _, err = clinSvc.ListByDoctor(ctx, uid, dashboardFetchLimit, 0)
				case "patient":
					uid, idErr := callerID(ctx)
					if idErr != nil {
						return nil, idErr
					}
					items, _, err = clinSvc.ListByPatient(ctx, uid, dashboardFetchLimit, 0)
				default:
					items, _, err = clinSvc.ListPrescriptions(ctx, dashboardFetchLimit, 0)
				}
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var p clinical.Prescription
				if err := decodeInto(record, &p); err != nil {
					return err
				}
				// The prescriber is always the authenticated doctor.
				uid, err := callerID(ctx)
				if err != nil {
					return err
				}
				p.DoctorID = uid
				return clinSvc.CreatePrescription(ctx, &p)
			},
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				rxID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				if status, _ := fields["status"].(string); status == "Cancelled" {
					return clinSvc.CancelPrescription(ctx, rxID)
				}
				p, err := clinSvc.GetPrescription(ctx, rxID)
				if err != nil {
					return err
				}
				if err := decodeInto(fields, p); err != nil {
					return err
				}
				p.ID = rxID
				return clinSvc.UpdatePrescription(ctx, p)
			},
		},

		Appointments: dashboard.ResourceOps{
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				var (
					items []*scheduling.Appointment
					err   error
				)
				switch auth.RoleFromContext(ctx) {
				case "doctor":
					uid, idErr := callerID(ctx)
					if idErr != nil {
						return nil, idErr
					}
					items, _, err = schedSvc.ListByDoctor(ctx, uid, dashboardFetchLimit, 0)
				case "patient":
					uid, idErr := callerID(ctx)
					if idErr != nil {
						return nil, idErr
					}
					items, _, err = schedSvc.ListByPatient(ctx, uid, dashboardFetchLimit, 0)
				default:
					items, _, err = schedSvc.List(ctx, dashboardFetchLimit, 0)
				}
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var a scheduling.Appointment
				if err := decodeInto(record, &a); err != nil {
					return err
				}
				if v, ok := record["isTelehealth"].(bool); ok && v {
					a.Mode = scheduling.ModeTelehealth
				}
				// Patients book for themselves.
				if auth.RoleFromContext(ctx) == "patient" {
					uid, err := callerID(ctx)
					if err != nil {
						return err
					}
					a.PatientID = uid
				}
				return schedSvc.Book(ctx, &a)
			},
			// Appointment edits from the dashboard are status moves only;
			// rescheduling is a cancel-and-rebook.
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				apptID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				status, _ := fields["status"].(string)
				if status == "" {
					return fmt.Errorf("appointment updates change status only")
				}
				_, err = schedSvc.UpdateStatus(ctx, apptID, status)
				return err
			},
		},

		Approvals: dashboard.ResourceOps{
			Fetch: func(ctx context.Context) ([]dashboard.Record, error) {
				items, _, err := apprSvc.List(ctx, "", dashboardFetchLimit, 0)
				if err != nil {
					return nil, err
				}
				return toRecords(items)
			},
			Create: func(ctx context.Context, record map[string]any) error {
				var u approval.PendingUser
				if err := decodeInto(record, &u); err != nil {
					return err
				}
				return apprSvc.Register(ctx, &u)
			},
			// An approval "edit" is the admin's decision.
			Update: func(ctx context.Context, id string, fields dashboard.FieldSet) error {
				reqID, err := uuid.Parse(id)
				if err != nil {
					return err
				}
				reviewer := auth.UserIDFromContext(ctx)
				switch status, _ := fields["status"].(string); status {
				case approval.StatusApproved:
					role, _ := fields["assignedRole"].(string)
					_, err = apprSvc.Approve(ctx, reqID, role, reviewer)
				case approval.StatusRejected:
					_, err = apprSvc.Reject(ctx, reqID, reviewer)
				default:
					err = fmt.Errorf("approval updates must set status to %s or %s",
						approval.StatusApproved, approval.StatusRejected)
				}
				return err
			},
		},
	}
}

// rosterSource builds the staff roster workbook: one sheet of doctors, one
// of non-clinical staff, with department ids resolved to names.
func rosterSource(dirSvc *directory.Service, idSvc *identity.Service) export.RosterSource {
	return func(ctx context.Context) ([]export.Sheet, error) {
		departments, _, err := dirSvc.ListDepartments(ctx, dashboardFetchLimit, 0)
		if err != nil {
			return nil, err
		}
		deptNames := make(map[uuid.UUID]string, len(departments))
		for _, d := range departments {
			deptNames[d.ID] = d.Name
		}
		deptName := func(id *uuid.UUID) string {
			if id == nil {
				return ""
			}
			return deptNames[*id]
		}

		doctors, _, err := idSvc.ListDoctors(ctx, dashboardFetchLimit, 0)
		if err != nil {
			return nil, err
		}
		doctorRows := make([][]interface{}, 0, len(doctors))
		for _, d := range doctors {
			spec := ""
			if d.Specialization != nil {
				spec = *d.Specialization
			}
			doctorRows = append(doctorRows, []interface{}{
				d.FirstName + " " + d.LastName, spec, deptName(d.DepartmentID), d.Email, d.Status,
			})
		}

		staff, _, err := dirSvc.ListStaff(ctx, dashboardFetchLimit, 0)
		if err != nil {
			return nil, err
		}
		staffRows := make([][]interface{}, 0, len(staff))
		for _, m := range staff {
			email := ""
			if m.Email != nil {
				email = *m.Email
			}
			staffRows = append(staffRows, []interface{}{
				m.FirstName + " " + m.LastName, m.RoleTitle, deptName(m.DepartmentID), email, m.Status,
			})
		}

		return []export.Sheet{
			{
				Name:   "Doctors",
				Header: []string{"Name", "Specialization", "Department", "Email", "Status"},
				Rows:   doctorRows,
			},
			{
				Name:   "Staff",
				Header: []string{"Name", "Role", "Department", "Email", "Status"},
				Rows:   staffRows,
			},
		}, nil
	}
}
