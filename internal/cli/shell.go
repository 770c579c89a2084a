package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"valterbank/internal/core"
	applog "valterbank/internal/log"
	"valterbank/internal/services"
)

const statementTimeLayout = "02/01/2006 15:04:05"

// Shell is the interactive teller menu. It reads one answer per line from in
// and writes prompts and results to out.
type Shell struct {
	svc    *services.LedgerService
	in     *bufio.Scanner
	out    io.Writer
	logger *applog.Logger
}

func NewShell(svc *services.LedgerService, in io.Reader, out io.Writer, logger *applog.Logger) *Shell {
	if logger == nil {
		logger = applog.Discard()
	}
	return &Shell{
		svc:    svc,
		in:     bufio.NewScanner(in),
		out:    out,
		logger: logger.WithComponent(applog.ComponentCLI),
	}
}

// Run drives the main menu until the user quits, the input ends or ctx is
// cancelled. Reaching the end of input is not an error.
func (s *Shell) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.mainMenu()
		opt, ok := s.ask("Choose an option: ")
		if !ok {
			return s.inputErr()
		}

		switch opt {
		case "1":
			s.addClient(ctx)
		case "2":
			s.openAccount(ctx)
		case "3":
			if err := s.accountMenu(ctx); err != nil {
				return err
			}
		case "4":
			s.printf("\nThank you for using %s. Goodbye!\n", s.svc.BankName())
			return nil
		default:
			s.printf("\nInvalid option. Please try again.\n\n")
		}
	}
}

func (s *Shell) mainMenu() {
	s.printf("\n --- %s - Digital Banking --- \n\n", s.svc.BankName())
	s.printf("1. Add client\n")
	s.printf("2. Open account\n")
	s.printf("3. Access account\n")
	s.printf("4. Quit\n\n")
}

func (s *Shell) addClient(ctx context.Context) {
	name, ok := s.ask("Client name: ")
	if !ok {
		return
	}
	taxID, ok := s.ask("Client tax id: ")
	if !ok {
		return
	}
	c, err := s.svc.AddClient(ctx, name, taxID)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	s.printf("%s registered.\n", c)
}

func (s *Shell) openAccount(ctx context.Context) {
	taxID, ok := s.ask("Tax id of the account holder: ")
	if !ok {
		return
	}
	if _, err := s.svc.Client(taxID); err != nil {
		s.printf("Client not found. Register the client first.\n")
		return
	}
	answer, ok := s.ask("Account type (checking/savings): ")
	if !ok {
		return
	}
	kind, err := core.ParseKind(answer)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	acc, err := s.svc.OpenAccount(ctx, taxID, kind)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	s.printf("%s account No. %d opened.\n", kindLabel(acc.Kind()), acc.Number())
}

// accountMenu only returns an error when ctx is cancelled.
func (s *Shell) accountMenu(ctx context.Context) error {
	answer, ok := s.ask("Account number: ")
	if !ok {
		return nil
	}
	number, err := strconv.Atoi(answer)
	if err != nil {
		s.printf("Error: invalid input, please enter a number.\n")
		return nil
	}
	acc, err := s.svc.Account(number)
	if err != nil {
		s.printf("Error: %v\n", err)
		return nil
	}
	owner, err := s.svc.Client(acc.OwnerTaxID())
	if err != nil {
		s.printf("Error: %v\n", err)
		return nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.printf("\n --- Operations for Account No. %d ---\n", acc.Number())
		s.printf("Client: %s | Balance: $%s\n", owner.Name(), core.FormatAmount(acc.Balance()))
		s.printf("1. Deposit\n")
		s.printf("2. Withdraw\n")
		s.printf("3. Statement\n")
		s.printf("4. Back to main menu\n")
		opt, ok := s.ask("Choose an option: ")
		if !ok {
			return nil
		}

		switch opt {
		case "1":
			s.deposit(ctx, number)
		case "2":
			s.withdraw(ctx, number)
		case "3":
			s.statement(ctx, number)
		case "4":
			return nil
		default:
			s.printf("Invalid option. Try again.\n")
		}
	}
}

func (s *Shell) deposit(ctx context.Context, number int) {
	amount, ok := s.askAmount("Deposit amount: ")
	if !ok {
		return
	}
	out, err := s.svc.Deposit(ctx, number, amount)
	switch {
	case err != nil:
		s.printf("Error: %v\n", err)
	case out.OK():
		s.printf("Deposit of $%s completed.\n", core.FormatAmount(amount))
	default:
		s.printf("Invalid deposit amount.\n")
	}
}

func (s *Shell) withdraw(ctx context.Context, number int) {
	amount, ok := s.askAmount("Withdrawal amount: ")
	if !ok {
		return
	}
	out, err := s.svc.Withdraw(ctx, number, amount)
	var ife *core.InsufficientFundsError
	switch {
	case errors.As(err, &ife):
		s.printf("Operation failed: %v\n", ife)
	case err != nil:
		s.printf("Error: %v\n", err)
	case out.OK():
		s.printf("Withdrawal of $%s completed.\n", core.FormatAmount(amount))
	default:
		s.printf("Invalid withdrawal amount.\n")
	}
}

func (s *Shell) statement(ctx context.Context, number int) {
	view, err := s.svc.Statement(ctx, number)
	if err != nil {
		s.printf("Error: %v\n", err)
		return
	}
	RenderStatement(s.out, view)
}

// RenderStatement writes the statement screen for view.
func RenderStatement(w io.Writer, view core.StatementView) {
	fmt.Fprintf(w, "\n--- Statement for Account No. %d ---\n", view.Number)
	fmt.Fprintf(w, "Client: %s\n", view.ClientName)
	fmt.Fprintf(w, "Current balance: $%s\n", core.FormatAmount(view.Balance))
	fmt.Fprintf(w, "Transaction history:\n")
	if len(view.Entries) == 0 {
		fmt.Fprintf(w, "No transactions recorded.\n")
	}
	for _, e := range view.Entries {
		fmt.Fprintf(w, "- %s: %s\n", e.Timestamp.Format(statementTimeLayout), e.Description)
	}
	fmt.Fprintf(w, "-------------------------------------\n\n")
}

func (s *Shell) askAmount(prompt string) (decimal.Decimal, bool) {
	answer, ok := s.ask(prompt)
	if !ok {
		return decimal.Zero, false
	}
	amount, err := core.ParseAmount(answer)
	if err != nil {
		s.printf("Error: invalid input, please enter a number.\n")
		return decimal.Zero, false
	}
	return amount, true
}

// ask prints prompt and returns the trimmed next line. ok is false at the end
// of input.
func (s *Shell) ask(prompt string) (string, bool) {
	s.printf("%s", prompt)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) inputErr() error {
	if err := s.in.Err(); err != nil {
		s.logger.Error("Failed to read input", applog.FieldError, err.Error())
		return fmt.Errorf("read input: %w", err)
	}
	return nil
}

func (s *Shell) printf(format string, args ...any) {
	fmt.Fprintf(s.out, format, args...)
}

func kindLabel(k core.Kind) string {
	if k == core.KindChecking {
		return "Checking"
	}
	return "Savings"
}
