package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"ostrack/internal/app"
	"ostrack/internal/db"
	"ostrack/internal/domain"
	"ostrack/internal/engine"
	"ostrack/internal/engine/auth"
	"ostrack/internal/report"
	"ostrack/internal/server"
)

var rootCmd = &cobra.Command{
	Use:   "osctl",
	Short: "Service order tracker",
	Long: `osctl tracks printer maintenance service orders (O.S.): creation,
technician assignment, equipment verification checklists, status lifecycle
and exportable reports. Orders live in a SQLite workspace under .ostrack/;
'osctl serve' exposes the same data over a role-gated HTTP API.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		workspace := viper.GetString("workspace")
		if _, err := db.EnsureWorkspace(workspace); err != nil {
			return err
		}
		return nil
	},
}

func main() {
	cobra.OnInitialize(initConfig)
	addPersistentFlags()
	registerCommands()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println("error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetEnvPrefix("OSTRACK")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

func addPersistentFlags() {
	rootCmd.PersistentFlags().StringP("workspace", "w", ".", "workspace directory")
	rootCmd.PersistentFlags().Bool("json", false, "output JSON")
	_ = viper.BindPFlag("workspace", rootCmd.PersistentFlags().Lookup("workspace"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
}

func registerCommands() {
	rootCmd.AddCommand(orderCmd())
	rootCmd.AddCommand(statsCmd())
	rootCmd.AddCommand(userCmd())
	rootCmd.AddCommand(serveCmd())
}

// localSession is the implicit session for direct workspace access. The
// role gate applies to the HTTP API; the workspace owner is trusted.
func localSession() auth.Session {
	return auth.Session{
		UserID: "local-admin",
		Name:   "Local Administrator",
		Role:   domain.RoleAdmin,
		Source: "cli",
	}
}

func withEngine(ctx context.Context, fn func(context.Context, engine.Engine) error) error {
	e, closeFn, err := app.Open(ctx, viper.GetString("workspace"))
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(ctx, e)
}

func printJSON(v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(b))
	return nil
}

func orderCmd() *cobra.Command {
	ord := &cobra.Command{Use: "order", Short: "Manage service orders"}
	ord.AddCommand(orderListCmd())
	ord.AddCommand(orderShowCmd())
	ord.AddCommand(orderCreateCmd())
	ord.AddCommand(orderSetCmd())
	ord.AddCommand(orderDeleteCmd())
	ord.AddCommand(orderExportCmd())
	ord.AddCommand(orderDocumentCmd())
	return ord
}

func addFilterFlags(cmd *cobra.Command, c *engine.Criteria) {
	cmd.Flags().StringVar(&c.Search, "search", "", "substring match on os number, client or ticket")
	cmd.Flags().StringVar(&c.Status, "status", "", "status filter")
	cmd.Flags().StringVar(&c.PAT, "pat", "", "PAT filter")
	cmd.Flags().StringVar(&c.Serial, "serial", "", "equipment serial filter")
	cmd.Flags().StringVar(&c.Unit, "unit", "", "unit filter")
	cmd.Flags().StringVar(&c.DateStart, "date-start", "", "opening date lower bound (YYYY-MM-DD, RESOLVIDO only)")
	cmd.Flags().StringVar(&c.DateEnd, "date-end", "", "opening date upper bound (YYYY-MM-DD, RESOLVIDO only)")
}

func orderListCmd() *cobra.Command {
	var criteria engine.Criteria
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List service orders",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				orders, err := e.ListOrders(ctx, criteria)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(orders)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Chamado", "O.S.", "PAT", "Cliente", "Unidade", "Data", "Situação"})
				for _, o := range orders {
					tw.AppendRow(table.Row{o.ID, o.TicketNumber, o.OSNumber, o.PAT, o.ClientName, o.Unit, o.OpeningDate, o.Status})
				}
				tw.Render()
				return nil
			})
		},
	}
	addFilterFlags(cmd, &criteria)
	return cmd
}

func orderShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <order-id>",
		Short: "Show one service order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				o, err := e.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(o)
				}
				fields := table.NewWriter()
				fields.SetOutputMirror(os.Stdout)
				fields.AppendHeader(table.Row{"Campo", "Valor"})
				fields.AppendRows([]table.Row{
					{"ID", o.ID},
					{"N° Chamado", o.TicketNumber},
					{"N° O.S.", o.OSNumber},
					{"PAT", o.PAT},
					{"Situação", o.Status},
					{"Data de Abertura", o.OpeningDate},
					{"Cliente", o.ClientName},
					{"Unidade", o.Unit},
					{"Técnico", o.ResponsibleTech},
					{"Laudo Técnico", o.TechnicalReport},
				})
				fields.Render()
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Item Verificado", "Status", "Observação"})
				for _, v := range o.Verifications {
					tw.AppendRow(table.Row{v.Item, v.Status, v.Observation})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func addOrderFieldFlags(cmd *cobra.Command, o *domain.ServiceOrder) {
	cmd.Flags().StringVar(&o.TicketNumber, "ticket", "", "ticket number (N° chamado)")
	cmd.Flags().StringVar(&o.OSNumber, "os", "", "O.S. number")
	cmd.Flags().StringVar(&o.PAT, "pat", "", "PAT asset code")
	cmd.Flags().StringVar(&o.Status, "status", "", "status ("+strings.Join(domain.Statuses, ", ")+")")
	cmd.Flags().StringVar(&o.OpeningDate, "opening-date", "", "opening date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&o.ResponsibleOpening, "responsible-opening", "", "who opened the order")
	cmd.Flags().StringVar(&o.ResponsibleTech, "tech", "", "responsible technician")
	cmd.Flags().StringVar(&o.Phone, "phone", "", "contact phone")
	cmd.Flags().StringVar(&o.ClientName, "client", "", "client name")
	cmd.Flags().StringVar(&o.Unit, "unit", "", "client unit")
	cmd.Flags().StringVar(&o.ServiceAddress, "address", "", "service address")
	cmd.Flags().StringVar(&o.EquipmentType, "equipment-type", "", "equipment type")
	cmd.Flags().StringVar(&o.EquipmentBrand, "brand", "", "equipment brand")
	cmd.Flags().StringVar(&o.EquipmentModel, "model", "", "equipment model")
	cmd.Flags().StringVar(&o.EquipmentSerial, "serial", "", "equipment serial")
	cmd.Flags().StringVar(&o.EquipmentBoardSerial, "board-serial", "", "board serial")
	cmd.Flags().StringVar(&o.CallInfo, "call-info", "", "call description")
	cmd.Flags().StringVar(&o.Materials, "materials", "", "materials used")
	cmd.Flags().StringVar(&o.TechnicalReport, "report", "", "technical report")
	cmd.Flags().StringVar(&o.TotalPageCount, "page-count", "", "total page counter")
	cmd.Flags().StringVar(&o.PendingIssues, "pending", "", "pending issues")
	cmd.Flags().StringVar(&o.NextVisit, "next-visit", "", "next visit (YYYY-MM-DD)")
	cmd.Flags().BoolVar(&o.EquipmentReplaced, "replaced", false, "equipment replaced")
	cmd.Flags().StringVar(&o.Observations, "observations", "", "observations")
}

func orderCreateCmd() *cobra.Command {
	var o domain.ServiceOrder
	var fromFile string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create service order",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fromFile != "" {
				data, err := os.ReadFile(fromFile)
				if err != nil {
					return err
				}
				if err := json.Unmarshal(data, &o); err != nil {
					return fmt.Errorf("parse %s: %w", fromFile, err)
				}
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				created, err := e.CreateOrder(ctx, o, localSession())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(created)
				}
				fmt.Printf("created service order %s\n", created.ID)
				return nil
			})
		},
	}
	addOrderFieldFlags(cmd, &o)
	cmd.Flags().StringVar(&fromFile, "from-file", "", "read the order payload from a JSON file")
	return cmd
}

func orderSetCmd() *cobra.Command {
	var updates domain.ServiceOrder
	cmd := &cobra.Command{
		Use:   "set <order-id>",
		Short: "Update service order fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				o, err := e.Repo.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}
				applyFlagUpdates(cmd, &o, updates)
				updated, err := e.UpdateOrder(ctx, args[0], o)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(updated)
				}
				fmt.Printf("updated service order %s\n", updated.ID)
				return nil
			})
		},
	}
	addOrderFieldFlags(cmd, &updates)
	return cmd
}

// applyFlagUpdates copies only the flags the user actually set onto the
// stored record, so 'order set' behaves like editing a form.
func applyFlagUpdates(cmd *cobra.Command, o *domain.ServiceOrder, updates domain.ServiceOrder) {
	set := func(name string, dst *string, v string) {
		if cmd.Flags().Changed(name) {
			*dst = v
		}
	}
	set("ticket", &o.TicketNumber, updates.TicketNumber)
	set("os", &o.OSNumber, updates.OSNumber)
	set("pat", &o.PAT, updates.PAT)
	set("status", &o.Status, updates.Status)
	set("opening-date", &o.OpeningDate, updates.OpeningDate)
	set("responsible-opening", &o.ResponsibleOpening, updates.ResponsibleOpening)
	set("tech", &o.ResponsibleTech, updates.ResponsibleTech)
	set("phone", &o.Phone, updates.Phone)
	set("client", &o.ClientName, updates.ClientName)
	set("unit", &o.Unit, updates.Unit)
	set("address", &o.ServiceAddress, updates.ServiceAddress)
	set("equipment-type", &o.EquipmentType, updates.EquipmentType)
	set("brand", &o.EquipmentBrand, updates.EquipmentBrand)
	set("model", &o.EquipmentModel, updates.EquipmentModel)
	set("serial", &o.EquipmentSerial, updates.EquipmentSerial)
	set("board-serial", &o.EquipmentBoardSerial, updates.EquipmentBoardSerial)
	set("call-info", &o.CallInfo, updates.CallInfo)
	set("materials", &o.Materials, updates.Materials)
	set("report", &o.TechnicalReport, updates.TechnicalReport)
	set("page-count", &o.TotalPageCount, updates.TotalPageCount)
	set("pending", &o.PendingIssues, updates.PendingIssues)
	set("next-visit", &o.NextVisit, updates.NextVisit)
	set("observations", &o.Observations, updates.Observations)
	if cmd.Flags().Changed("replaced") {
		o.EquipmentReplaced = updates.EquipmentReplaced
	}
}

func orderDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <order-id>",
		Short: "Delete service order",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				if err := e.DeleteOrder(ctx, args[0]); err != nil {
					return err
				}
				fmt.Printf("deleted service order %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}

func orderExportCmd() *cobra.Command {
	var criteria engine.Criteria
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export orders to a CSV or XLSX report file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = report.CSVFilename
			}
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				orders, err := e.ListOrders(ctx, criteria)
				if err != nil {
					return err
				}
				switch {
				case strings.HasSuffix(out, ".xlsx"):
					data, err := report.WriteXLSX(orders)
					if err != nil {
						return err
					}
					if err := os.WriteFile(out, data, 0o644); err != nil {
						return err
					}
				default:
					f, err := os.Create(out)
					if err != nil {
						return err
					}
					defer f.Close()
					if err := report.WriteCSV(f, orders); err != nil {
						return err
					}
				}
				fmt.Printf("exported %d orders to %s\n", len(orders), out)
				return nil
			})
		},
	}
	addFilterFlags(cmd, &criteria)
	cmd.Flags().StringVar(&out, "out", "", "output file (.csv or .xlsx)")
	return cmd
}

func orderDocumentCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "document <order-id>",
		Short: "Write the printable order document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				o, err := e.GetOrder(ctx, args[0])
				if err != nil {
					return err
				}
				if out == "" {
					out = fmt.Sprintf("ordem_servico_%s.html", o.ID)
				}
				f, err := os.Create(out)
				if err != nil {
					return err
				}
				defer f.Close()
				if err := report.WriteDocument(f, o); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "output HTML file")
	return cmd
}

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Per-status order counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				stats, err := e.Stats(ctx)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(stats)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"Situação", "Total"})
				for _, s := range domain.Statuses {
					tw.AppendRow(table.Row{s, stats.Counts[s]})
				}
				tw.AppendFooter(table.Row{"TOTAL", stats.Total})
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func userCmd() *cobra.Command {
	usr := &cobra.Command{Use: "user", Short: "Manage logins"}
	usr.AddCommand(userAddCmd())
	usr.AddCommand(userListCmd())
	usr.AddCommand(userDeleteCmd())
	return usr
}

func userAddCmd() *cobra.Command {
	var email, name, password, role string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a login",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				u, err := e.CreateUser(ctx, localSession(), email, name, password, role)
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(u)
				}
				fmt.Printf("created user %s (%s)\n", u.Email, u.Role)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "login handle")
	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&password, "password", "", "password")
	cmd.Flags().StringVar(&role, "role", domain.RoleUser, "role (ADMIN or USER)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}

func userListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List logins",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				users, err := e.ListUsers(ctx, localSession())
				if err != nil {
					return err
				}
				if viper.GetBool("json") {
					return printJSON(users)
				}
				tw := table.NewWriter()
				tw.SetOutputMirror(os.Stdout)
				tw.AppendHeader(table.Row{"ID", "Email", "Name", "Role", "Created"})
				for _, u := range users {
					tw.AppendRow(table.Row{u.ID, u.Email, u.Name, u.Role, u.CreatedAt})
				}
				tw.Render()
				return nil
			})
		},
	}
	return cmd
}

func userDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <user-id>",
		Short: "Delete a login",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				if err := e.DeleteUser(ctx, localSession(), args[0]); err != nil {
					return err
				}
				fmt.Printf("deleted user %s\n", args[0])
				return nil
			})
		},
	}
	return cmd
}

func serveCmd() *cobra.Command {
	var addr, basePath string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer logger.Sync()
			return withEngine(cmd.Context(), func(ctx context.Context, e engine.Engine) error {
				if addr == "" {
					addr = e.Config.Server.Addr
				}
				if basePath == "" {
					basePath = e.Config.Server.BasePath
				}
				secret := os.Getenv("OSTRACK_JWT_SECRET")
				if secret == "" {
					secret = e.Config.Auth.JWTSecret
				}
				if secret == "" {
					return fmt.Errorf("jwt secret required: set OSTRACK_JWT_SECRET or auth.jwt_secret in config.yml")
				}
				authCfg := server.AuthConfig{
					JWTSecret: secret,
					TokenTTL:  time.Duration(e.Config.Auth.TokenTTLHours) * time.Hour,
					Logger:    logger,
				}
				handler, err := server.New(server.Config{Engine: e, BasePath: basePath, Auth: authCfg, Logger: logger})
				if err != nil {
					return err
				}
				srv := &http.Server{Addr: addr, Handler: handler}
				go func() {
					<-ctx.Done()
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					srv.Shutdown(shutdownCtx)
				}()
				logger.Info("serving service-order API",
					zap.String("addr", addr),
					zap.String("base_path", basePath),
				)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to config)")
	cmd.Flags().StringVar(&basePath, "base-path", "", "API base path (defaults to config)")
	return cmd
}
