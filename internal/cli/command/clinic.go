package command

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/medqueue-go/internal/client/resource"
	"github.com/yndnr/medqueue-go/internal/core/domain"
)

// field returns obj[key] when present, otherwise obj itself.
func field(obj resource.Object, key string) any {
	if v, ok := obj[key]; ok {
		return v
	}
	return obj
}

// requireArg returns the first positional argument.
func requireArg(c *cli.Context, name string) (string, error) {
	v := strings.TrimSpace(c.Args().First())
	if v == "" {
		return "", domain.ErrMissingArgument.WithDetails(name + " is required")
	}
	return v, nil
}

// showObject renders one envelope field in table mode and the whole
// object otherwise.
func (a *App) showObject(c *cli.Context, obj resource.Object, key string) error {
	if !a.isTable(c) {
		return a.render(c, obj)
	}
	if msg, ok := obj["message"].(string); ok && msg != "" {
		a.say(c, "%s", msg)
		if _, has := obj[key]; !has {
			return nil
		}
	}
	return a.render(c, field(obj, key))
}

func (a *App) patientCommand() *cli.Command {
	return &cli.Command{
		Name:    "patient",
		Aliases: []string{"patients"},
		Usage:   "Patient records",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List patients",
				Before: a.requireAuth(pageSearch),
				Action: func(c *cli.Context) error {
					obj, err := a.pc.Resources.Patients(c.Context)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "patients")
				},
			},
			{
				Name:      "get",
				Usage:     "Show one patient",
				ArgsUsage: "PATIENT_ID",
				Before:    a.requireAuth(pageSearch),
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "PATIENT_ID")
					if err != nil {
						return err
					}
					obj, err := a.pc.Resources.Patient(c.Context, id)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "patient")
				},
			},
			{
				Name:      "search",
				Usage:     "Search patients by name, id or phone",
				ArgsUsage: "QUERY",
				Before:    a.requireAuth(pageSearch),
				Action: func(c *cli.Context) error {
					q := strings.Join(c.Args().Slice(), " ")
					obj, err := a.pc.Resources.SearchPatients(c.Context, q)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "patients")
				},
			},
			{
				Name:   "create",
				Usage:  "Register a patient",
				Before: a.requireAuth(pageRegistration),
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "Full name", Required: true},
					&cli.IntFlag{Name: "age", Usage: "Age in years"},
					&cli.StringFlag{Name: "phone", Usage: "Phone number"},
					&cli.StringFlag{Name: "email", Usage: "Email address"},
					&cli.StringFlag{Name: "condition", Usage: "Presenting condition"},
					&cli.BoolFlag{Name: "emergency", Usage: "Mark as an emergency"},
					&cli.IntFlag{Name: "priority", Value: resource.DefaultPriority, Usage: "Triage priority (lower is more urgent)"},
				},
				Action: func(c *cli.Context) error {
					data := resource.Object{
						"name":         c.String("name"),
						"is_emergency": c.Bool("emergency"),
						"priority":     c.Int("priority"),
					}
					for _, k := range []string{"phone", "email", "condition"} {
						if c.IsSet(k) {
							data[k] = c.String(k)
						}
					}
					if c.IsSet("age") {
						data["age"] = c.Int("age")
					}

					obj, err := a.pc.Resources.CreatePatient(c.Context, data)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "patient")
				},
			},
		},
	}
}

func (a *App) doctorCommand() *cli.Command {
	return &cli.Command{
		Name:    "doctor",
		Aliases: []string{"doctors"},
		Usage:   "Doctor directory",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "List doctors",
				Before: a.requireAuth(pageAppointment),
				Action: func(c *cli.Context) error {
					obj, err := a.pc.Resources.Doctors(c.Context)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "doctors")
				},
			},
			{
				Name:      "get",
				Usage:     "Show one doctor",
				ArgsUsage: "DOCTOR_ID",
				Before:    a.requireAuth(pageAppointment),
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "DOCTOR_ID")
					if err != nil {
						return err
					}
					obj, err := a.pc.Resources.Doctor(c.Context, id)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "doctor")
				},
			},
		},
	}
}

func (a *App) queueCommand() *cli.Command {
	return &cli.Command{
		Name:  "queue",
		Usage: "Waiting queues",
		Subcommands: []*cli.Command{
			{
				Name:   "list",
				Usage:  "Show the emergency and regular queues",
				Before: a.requireAuth(pageAppointment),
				Action: func(c *cli.Context) error {
					obj, err := a.pc.Resources.Queue(c.Context)
					if err != nil {
						return err
					}
					if !a.isTable(c) {
						return a.render(c, obj)
					}
					return a.showQueues(c, obj)
				},
			},
			{
				Name:      "add",
				Usage:     "Add a patient to the queue",
				ArgsUsage: "PATIENT_ID",
				Before:    a.requireAuth(pageAppointment),
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "emergency", Usage: "Use the emergency queue"},
					&cli.IntFlag{Name: "priority", Value: resource.DefaultPriority, Usage: "Emergency priority (lower is more urgent)"},
				},
				Action: func(c *cli.Context) error {
					id, err := requireArg(c, "PATIENT_ID")
					if err != nil {
						return err
					}
					obj, err := a.pc.Resources.AddToQueue(c.Context, id, c.Bool("emergency"), c.Int("priority"))
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "queue")
				},
			},
			{
				Name:   "next",
				Usage:  "Call the next patient",
				Before: a.requireAuth(pageAppointment),
				Action: func(c *cli.Context) error {
					obj, err := a.pc.Resources.NextPatient(c.Context)
					if err != nil {
						return err
					}
					if qt, ok := obj["queue_type"].(string); ok {
						a.say(c, "Next patient (%s queue):", qt)
					}
					return a.showObject(c, obj, "patient")
				},
			},
		},
	}
}

// showQueues prints the emergency queue, flattened with its priorities,
// then the regular queue.
func (a *App) showQueues(c *cli.Context, obj resource.Object) error {
	var emergency []any
	if entries, ok := obj["emergency_queue"].([]any); ok {
		for _, e := range entries {
			entry, _ := e.(map[string]any)
			row := map[string]any{}
			if item, ok := entry["item"].(map[string]any); ok {
				for k, v := range item {
					row[k] = v
				}
			}
			row["priority"] = entry["priority"]
			emergency = append(emergency, row)
		}
	}
	regular, _ := obj["regular_queue"].([]any)

	fmt.Fprintf(a.Stdout, "Emergency queue (%d)\n", len(emergency))
	if err := a.render(c, emergency); err != nil {
		return err
	}
	fmt.Fprintf(a.Stdout, "\nRegular queue (%d)\n", len(regular))
	return a.render(c, regular)
}

func (a *App) schedulerCommand() *cli.Command {
	return &cli.Command{
		Name:  "scheduler",
		Usage: "Doctor assignment",
		Subcommands: []*cli.Command{
			{
				Name:   "assign",
				Usage:  "Assign queued patients to doctors",
				Before: a.requireAuth(pageAdmin),
				Action: func(c *cli.Context) error {
					obj, err := a.pc.Resources.AssignPatients(c.Context)
					if err != nil {
						return err
					}
					return a.showObject(c, obj, "assignments")
				},
			},
		},
	}
}

func (a *App) dashboardCommand() *cli.Command {
	return &cli.Command{
		Name:   "dashboard",
		Usage:  "Show clinic statistics",
		Before: a.requireAuth(pageDashboard),
		Action: func(c *cli.Context) error {
			obj, err := a.pc.Resources.DashboardStats(c.Context)
			if err != nil {
				return err
			}
			return a.showObject(c, obj, "stats")
		},
	}
}

func (a *App) healthCommand() *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check that the API is up",
		Action: func(c *cli.Context) error {
			pc, err := a.page(c)
			if err != nil {
				return err
			}
			obj, err := pc.Resources.Health(c.Context)
			if err != nil {
				return err
			}
			if !a.isTable(c) {
				return a.render(c, obj)
			}
			status, _ := obj["status"].(string)
			a.say(c, "%s: %s", pc.Transport.BaseURL(), status)
			return nil
		},
	}
}
