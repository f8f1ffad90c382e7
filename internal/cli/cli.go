package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"gw-converter-cli/internal/api"
	"gw-converter-cli/internal/models"
	"gw-converter-cli/internal/service"
)

// Journal локальный журнал конвертаций, доступный без бэкенда.
type Journal interface {
	Append(e models.JournalEntry) error
	Records() []models.JournalEntry
}

// Shell интерактивная оболочка конвертера валют.
type Shell struct {
	auth     service.Auth
	currency service.Currency
	history  service.History
	session  service.SessionStore
	journal  Journal
	pageSize int

	in  io.Reader
	out io.Writer
	log *slog.Logger
}

func NewShell(
	auth service.Auth,
	currency service.Currency,
	history service.History,
	session service.SessionStore,
	journal Journal,
	pageSize int,
	in io.Reader,
	out io.Writer,
	log *slog.Logger,
) *Shell {
	return &Shell{
		auth:     auth,
		currency: currency,
		history:  history,
		session:  session,
		journal:  journal,
		pageSize: pageSize,
		in:       in,
		out:      out,
		log:      log,
	}
}

// Run запускает цикл чтения команд и завершается на exit или конце ввода.
func (s *Shell) Run(ctx context.Context) {
	scanner := bufio.NewScanner(s.in)

	fmt.Fprintln(s.out, "Currency converter. Type 'help' for a list of commands.")

	for {
		fmt.Fprint(s.out, "converter> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		args := strings.Fields(line)
		if len(args) == 0 {
			continue
		}

		switch args[0] {
		case "help":
			s.printHelp()
		case "login":
			s.handleLogin(ctx, scanner)
		case "signup":
			s.handleSignup(ctx, scanner)
		case "logout":
			s.handleLogout()
		case "whoami":
			s.handleWhoami()
		case "currencies":
			s.handleCurrencies(ctx)
		case "convert":
			s.handleConvert(ctx, args[1:])
		case "history":
			s.handleHistory(ctx, args[1:])
		case "exit":
			fmt.Fprintln(s.out, "Bye")
			return
		default:
			fmt.Fprintln(s.out, "Unknown command. Type 'help' for a list of commands.")
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.out, `Available commands:
  login                        sign in with email and password
  signup                       create an account
  logout                       drop the current session
  whoami                       show the current session
  currencies                   list supported currencies
  convert <from> <to> <amount> convert an amount between currencies
  history [term] [page]        show conversion history from the server
  history -local               show conversions recorded on this machine
  exit                         quit`)
}

func (s *Shell) requireAuth() bool {
	if !s.session.IsAuthenticated() {
		fmt.Fprintln(s.out, "Please log in first")
		return false
	}
	return true
}

func (s *Shell) prompt(scanner *bufio.Scanner, label string) string {
	fmt.Fprint(s.out, label)
	if !scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(scanner.Text())
}

func (s *Shell) handleLogin(ctx context.Context, scanner *bufio.Scanner) {
	email := s.prompt(scanner, "Email: ")
	password := s.prompt(scanner, "Password: ")

	if err := s.auth.Login(ctx, email, password); err != nil {
		fmt.Fprintln(s.out, api.HandleAPIError(err))
		return
	}
	fmt.Fprintln(s.out, "Logged in")
}

func (s *Shell) handleSignup(ctx context.Context, scanner *bufio.Scanner) {
	name := s.prompt(scanner, "Name: ")
	email := s.prompt(scanner, "Email: ")
	password := s.prompt(scanner, "Password: ")

	resp, err := s.auth.Signup(ctx, email, password, name)
	if err != nil {
		fmt.Fprintln(s.out, api.HandleAPIError(err))
		return
	}
	fmt.Fprintf(s.out, "Account created for %s. Use 'login' to sign in.\n", resp.Email)
}

func (s *Shell) handleLogout() {
	if err := s.auth.Logout(); err != nil {
		fmt.Fprintln(s.out, api.HandleAPIError(err))
		return
	}
	fmt.Fprintln(s.out, "Logged out")
}

func (s *Shell) handleWhoami() {
	if !s.requireAuth() {
		return
	}

	claims, err := s.session.Claims()
	if err != nil {
		fmt.Fprintln(s.out, "Session token present, but its claims are unreadable")
		return
	}

	fmt.Fprintf(s.out, "Email: %s\n", claims.Email)
	if claims.ExpiresAt != nil {
		fmt.Fprintf(s.out, "Expires: %s\n", claims.ExpiresAt.Format(time.RFC3339))
		if claims.ExpiresAt.Before(time.Now()) {
			fmt.Fprintln(s.out, "Warning: the token has expired, the next request will require a new login")
		}
	}
}

func (s *Shell) handleCurrencies(ctx context.Context) {
	if !s.requireAuth() {
		return
	}

	types, err := s.currency.LoadCurrencyTypes(ctx)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to load currencies: "+api.HandleAPIError(err))
		return
	}
	if len(types) == 0 {
		fmt.Fprintln(s.out, "No currencies available")
		return
	}

	for _, c := range types {
		line := c.Currency
		if sym := c.DisplaySymbol(); sym != "" {
			line += " - " + sym
		}
		if c.Country != "" {
			line += " (" + c.Country + ")"
		}
		fmt.Fprintln(s.out, line)
	}
}

func (s *Shell) handleConvert(ctx context.Context, args []string) {
	if !s.requireAuth() {
		return
	}
	if len(args) != 3 {
		fmt.Fprintln(s.out, "Usage: convert <from> <to> <amount>")
		return
	}

	origin := strings.ToUpper(args[0])
	destiny := strings.ToUpper(args[1])
	amount := args[2]

	if _, err := s.currency.LoadCurrencyTypes(ctx); err != nil {
		fmt.Fprintln(s.out, "Failed to load currencies: "+api.HandleAPIError(err))
		return
	}

	result, err := s.currency.Convert(ctx, origin, destiny, amount)
	if err != nil {
		fmt.Fprintln(s.out, api.HandleAPIError(err))
		return
	}

	fmt.Fprintf(s.out, "%s %s = %s%.2f %s (transaction %s)\n",
		amount, origin, s.symbolFor(destiny), result.ValueDestiny, destiny, result.TransactionID)

	s.recordConversion(origin, destiny, amount, result)
}

func (s *Shell) recordConversion(origin, destiny, amount string, result *models.ConversionResult) {
	userID := "anonymous"
	if claims, err := s.session.Claims(); err == nil {
		if claims.Email != "" {
			userID = claims.Email
		} else if claims.UserID != "" {
			userID = claims.UserID
		}
	}

	entry := models.JournalEntry{
		ID:              uuid.NewString(),
		UserID:          userID,
		CurrencyOrigin:  origin,
		CurrencyDestiny: destiny,
		Amount:          amount,
		Result:          result.ValueDestiny,
		Timestamp:       time.Now(),
	}
	if err := s.journal.Append(entry); err != nil {
		s.log.Warn("не удалось записать конвертацию в журнал",
			slog.String("error", err.Error()))
	}
}

func (s *Shell) handleHistory(ctx context.Context, args []string) {
	if !s.requireAuth() {
		return
	}

	if len(args) > 0 && args[0] == "-local" {
		s.printLocalHistory()
		return
	}

	term := ""
	page := 1
	if len(args) > 0 {
		term = args[0]
	}
	if len(args) > 1 {
		n, err := strconv.Atoi(args[1])
		if err != nil {
			fmt.Fprintln(s.out, "Usage: history [term] [page]")
			return
		}
		page = n
	}

	records, err := s.history.LoadHistory(ctx)
	if err != nil {
		fmt.Fprintln(s.out, "Failed to load history: "+api.HandleAPIError(err))
		return
	}

	result := service.Paginate(service.Filter(records, term), page, s.pageSize)
	if result.TotalCount == 0 {
		fmt.Fprintln(s.out, "No conversions found")
		return
	}

	for _, r := range result.Records {
		fmt.Fprintf(s.out, "%s  %s  %.2f %s -> %.2f %s  tax %.2f  %s\n",
			r.DateOperation.Format("2006-01-02 15:04"), r.UserID,
			r.ValueOrigin, r.CurrencyOrigin,
			r.ValueDestiny, r.CurrencyDestiny,
			r.TaxConversion, r.ID)
	}
	fmt.Fprintf(s.out, "Page %d of %d (%d records)\n", result.Page, result.TotalPages, result.TotalCount)
}

func (s *Shell) printLocalHistory() {
	entries := s.journal.Records()
	if len(entries) == 0 {
		fmt.Fprintln(s.out, "No local conversions recorded")
		return
	}

	for _, e := range entries {
		fmt.Fprintf(s.out, "%s  %s  %s %s -> %.2f %s\n",
			e.Timestamp.Format("2006-01-02 15:04"), e.UserID,
			e.Amount, e.CurrencyOrigin, e.Result, e.CurrencyDestiny)
	}
}

func (s *Shell) symbolFor(code string) string {
	for _, c := range s.currency.Catalog() {
		if c.Currency == code {
			return c.DisplaySymbol()
		}
	}
	return ""
}
