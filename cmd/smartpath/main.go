package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"smartpath/internal/api"
	"smartpath/internal/cache"
	"smartpath/internal/config"
	"smartpath/internal/connections"
	"smartpath/internal/models"
	"smartpath/internal/performance"
	"smartpath/internal/resources"
	"smartpath/internal/session"
	"smartpath/internal/solver"
	"smartpath/internal/tutor"
)

// app bundles the wired orchestration components for the CLI commands
type app struct {
	session     *session.Store
	guard       *session.Guard
	connections *connections.Manager
	tutor       *tutor.Engine
	solver      *solver.Workflow
	resources   *resources.Service
	performance *performance.Service
}

func main() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	cfg := config.Load()

	logger, err := buildLogger(cfg.Debug)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	tokens, err := session.OpenTokenStore(cfg.TokenDBPath)
	if err != nil {
		logger.Fatal("failed to open token store", zap.Error(err))
	}
	defer tokens.Close()

	queries := cache.New(logger)

	// The base client reads the token through the session store, which is
	// constructed after it; TokenFunc breaks the cycle.
	var sessionStore *session.Store
	client := api.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, api.TokenFunc(func() string {
		if sessionStore == nil {
			return ""
		}
		return sessionStore.Token()
	}), logger)

	authClient := api.NewAuthClient(client)
	sessionStore, err = session.NewStore(tokens, authClient, queries, logger)
	if err != nil {
		logger.Fatal("failed to restore session", zap.Error(err))
	}

	application := &app{
		session:     sessionStore,
		guard:       session.NewGuard(sessionStore, logger),
		connections: connections.NewManager(api.NewRelationshipClient(client), api.NewInviteClient(client), queries, logger),
		tutor:       tutor.NewEngine(api.NewTutoringClient(client), logger),
		solver:      solver.NewWorkflow(api.NewMathClient(client), cfg.GradeLevel, logger),
		resources:   resources.NewService(api.NewResourceClient(client), queries, logger),
		performance: performance.NewService(api.NewPerformanceClient(client), api.NewReportClient(client), queries, logger),
	}

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	if err := application.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", api.UserMessage(err))
		os.Exit(1)
	}
}

func buildLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return a.login(ctx, args)
	case "logout":
		return a.session.Logout()
	case "whoami":
		return a.whoami(ctx)
	case "students":
		return a.students(ctx)
	case "dashboard":
		return a.dashboard(ctx, args)
	case "guardians":
		return a.guardians(ctx)
	case "invites":
		return a.invites(ctx)
	case "invite-new":
		return a.inviteNew(ctx)
	case "redeem":
		return a.redeem(ctx, args)
	case "remove":
		return a.remove(ctx, args)
	case "chat":
		return a.chat(ctx)
	case "solve":
		return a.solve(ctx, args)
	case "resources":
		return a.listResources(ctx)
	case "trends":
		return a.trends(ctx, args)
	case "predictions":
		return a.predictions(ctx)
	case "reports":
		return a.reports(ctx)
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	if len(args) < 2 {
		return errors.New("usage: smartpath login <email> <password>")
	}
	user, err := a.session.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("Logged in as %s (%s)\n", user.FullName, user.Role)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.session.CurrentUser(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s> role=%s", user.FullName, user.Email, user.Role)
	if user.GradeLevel > 0 {
		fmt.Printf(" grade=%d", user.GradeLevel)
	}
	fmt.Println()
	for _, item := range session.MenuFor(user.Role) {
		fmt.Printf("  %s -> %s\n", item.Label, item.Path)
	}
	return nil
}

func (a *app) students(ctx context.Context) error {
	students, err := a.connections.LinkedStudents(ctx)
	if err != nil {
		return err
	}
	if len(students) == 0 {
		fmt.Println("No linked students.")
		return nil
	}
	for _, student := range students {
		fmt.Printf("%d  %s (grade %d) linked %s\n", student.StudentID, student.FullName, student.GradeLevel, student.LinkedAt.Format("2006-01-02"))
	}
	return nil
}

func (a *app) dashboard(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: smartpath dashboard <student-id>")
	}
	studentID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid student id: %w", err)
	}
	snapshot, err := a.connections.StudentDashboard(ctx, studentID)
	if err != nil {
		return err
	}
	fmt.Printf("%s: GPA %.2f over %d subjects\n", snapshot.StudentName, snapshot.OverallGPA, snapshot.TotalSubjects)
	fmt.Printf("  strong:    %s\n", strings.Join(snapshot.StrongSubjects, ", "))
	fmt.Printf("  weak:      %s\n", strings.Join(snapshot.WeakSubjects, ", "))
	fmt.Printf("  improving: %s\n", strings.Join(snapshot.ImprovingSubjects, ", "))
	fmt.Printf("  declining: %s\n", strings.Join(snapshot.DecliningSubjects, ", "))
	return nil
}

func (a *app) guardians(ctx context.Context) error {
	guardians, err := a.connections.LinkedGuardians(ctx)
	if err != nil {
		return err
	}
	for _, guardian := range guardians {
		fmt.Printf("%d  %s (%s)\n", guardian.GuardianID, guardian.FullName, guardian.Role)
	}
	return nil
}

func (a *app) invites(ctx context.Context) error {
	codes, err := a.connections.InviteCodes(ctx)
	if err != nil {
		return err
	}
	for _, code := range codes {
		state := "open"
		if code.Redeemed {
			state = "redeemed"
		}
		fmt.Printf("%s  %s\n", code.Code, state)
	}
	return nil
}

func (a *app) inviteNew(ctx context.Context) error {
	code, err := a.connections.CreateInviteCode(ctx)
	if err != nil {
		return err
	}
	fmt.Println("Invite code:", code.Code)
	return nil
}

func (a *app) redeem(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: smartpath redeem <code>")
	}
	if err := a.connections.RedeemInviteCode(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("Invite code redeemed.")
	return nil
}

func (a *app) remove(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return errors.New("usage: smartpath remove <student-id>")
	}
	studentID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid student id: %w", err)
	}

	// Removal cannot be undone, so require explicit confirmation
	fmt.Printf("Remove student %d? This cannot be undone. [y/N] ", studentID)
	reader := bufio.NewReader(os.Stdin)
	answer, _ := reader.ReadString('\n')
	if strings.TrimSpace(strings.ToLower(answer)) != "y" {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := a.connections.Remove(ctx, studentID); err != nil {
		return err
	}
	fmt.Println("Student removed.")
	return nil
}

// requireRole resolves the guard decision the way a page router would:
// unauthenticated goes to login, a wrong role bounces with the notice.
func (a *app) requireRole(ctx context.Context, role models.Role) error {
	result := a.guard.Check(ctx, role)
	switch result.Decision {
	case session.DecisionRedirectLogin:
		return errors.New("not logged in, run: smartpath login <email> <password>")
	case session.DecisionRedirectHome:
		return errors.New(result.Notice)
	}
	return nil
}

func (a *app) chat(ctx context.Context) error {
	if err := a.requireRole(ctx, models.RoleStudent); err != nil {
		return err
	}
	fmt.Println("SmartPath tutor. Type a message, /mode <general|writing|planning>, or /quit.")
	fmt.Printf("tutor> %s\n", a.tutor.Transcript()[0].Text)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("you> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch {
		case line == "/quit":
			return nil
		case strings.HasPrefix(line, "/mode "):
			mode := models.ContextMode(strings.TrimPrefix(line, "/mode "))
			if err := a.tutor.SetMode(mode); err != nil {
				fmt.Println(api.UserMessage(err))
				continue
			}
			fmt.Println("Mode set to", mode)
		default:
			reply, err := a.tutor.Send(ctx, line)
			if err != nil {
				fmt.Println(api.UserMessage(err))
				continue
			}
			fmt.Printf("tutor> %s\n", reply)
		}
	}
}

func (a *app) solve(ctx context.Context, args []string) error {
	if err := a.requireRole(ctx, models.RoleStudent); err != nil {
		return err
	}

	withPractice := false
	if len(args) > 0 && args[0] == "-practice" {
		withPractice = true
		args = args[1:]
	}
	if len(args) < 1 {
		return errors.New("usage: smartpath solve [-practice] <problem text>")
	}

	solution, err := a.solver.Solve(ctx, strings.Join(args, " "), "")
	if err != nil {
		return err
	}
	fmt.Println(solution)

	if withPractice {
		problems, err := a.solver.GeneratePractice(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("\nPractice set (%d problems):\n", len(problems))
		for i, problem := range problems {
			fmt.Printf("%2d. %s\n    answer: %s\n", i+1, problem.Problem, problem.Answer)
		}
	}
	return nil
}

func (a *app) listResources(ctx context.Context) error {
	entries, err := a.resources.List(ctx)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		marker := " "
		if entry.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%s %d  %s [%s]\n", marker, entry.ID, entry.Title, entry.Subject)
	}
	return nil
}

func (a *app) trends(ctx context.Context, args []string) error {
	subject := ""
	if len(args) > 0 {
		subject = strings.Join(args, " ")
	}
	trends, err := a.performance.Trends(ctx, subject)
	if err != nil {
		return err
	}
	for _, trend := range trends {
		fmt.Printf("%s: %s", trend.Subject, trend.Trend)
		if trend.PredictedNext != nil {
			fmt.Printf(" (next ~%.1f)", *trend.PredictedNext)
		}
		fmt.Println()
	}
	return nil
}

func (a *app) predictions(ctx context.Context) error {
	predictions, err := a.performance.Predictions(ctx)
	if err != nil {
		return err
	}
	for _, prediction := range predictions {
		fmt.Printf("%s: %s -> %s (confidence %.0f%%)\n",
			prediction.Subject, prediction.CurrentGrade, prediction.PredictedNextGrade, prediction.Confidence*100)
	}
	return nil
}

func (a *app) reports(ctx context.Context) error {
	reports, err := a.performance.ReportHistory(ctx)
	if err != nil {
		return err
	}
	if len(reports) == 0 {
		fmt.Println("No reports uploaded.")
		return nil
	}
	for _, report := range reports {
		fmt.Printf("%d  %s %d (GPA %.2f, %d subjects)\n",
			report.ReportID, report.Term, report.Year, report.OverallGPA, len(report.Grades))
	}
	return nil
}

func printUsage() {
	fmt.Println(`SmartPath dashboard client

Usage:
  smartpath login <email> <password>
  smartpath logout
  smartpath whoami
  smartpath students
  smartpath dashboard <student-id>
  smartpath remove <student-id>
  smartpath guardians
  smartpath invites | invite-new | redeem <code>
  smartpath chat
  smartpath solve [-practice] <problem text>
  smartpath resources
  smartpath trends [subject]
  smartpath predictions
  smartpath reports`)
}
