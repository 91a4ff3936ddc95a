// Package ui is the interactive console surface of the ledger. It is an
// external collaborator of the core: every state change goes through the
// services, never through the entities directly.
package ui

import (
	"context"
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/google/uuid"
	"github.com/pterm/pterm"
	"github.com/shopspring/decimal"

	"github.com/ysekkat/bank-ledger/internal/models"
	"github.com/ysekkat/bank-ledger/internal/services"
)

// Menu drives the interactive banking session.
type Menu struct {
	auth     *services.AuthService
	clients  *services.ClientService
	accounts *services.AccountService
	engine   *services.TransactionService
	detector *services.SuspiciousActivityService
}

// New creates a Menu over the given services.
func New(
	auth *services.AuthService,
	clients *services.ClientService,
	accounts *services.AccountService,
	engine *services.TransactionService,
	detector *services.SuspiciousActivityService,
) *Menu {
	return &Menu{
		auth:     auth,
		clients:  clients,
		accounts: accounts,
		engine:   engine,
		detector: detector,
	}
}

// Run shows the main menu until the user quits or the context is canceled.
func (m *Menu) Run(ctx context.Context) error {
	pterm.DefaultHeader.Println("Banking Ledger")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		var choice string
		prompt := &survey.Select{
			Message: "Main menu:",
			Options: []string{"Login", "Register client", "System statistics", "Suspicious activity", "Quit"},
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			return err
		}

		switch choice {
		case "Login":
			m.login(ctx)
		case "Register client":
			m.registerClient(ctx)
		case "System statistics":
			m.systemStatistics(ctx)
		case "Suspicious activity":
			m.suspiciousActivity(ctx)
		case "Quit":
			return nil
		}
	}
}

func (m *Menu) login(ctx context.Context) {
	var email, password string
	if err := survey.AskOne(&survey.Input{Message: "Email:"}, &email); err != nil {
		return
	}
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password); err != nil {
		return
	}

	if _, err := m.auth.Login(ctx, email, password); err != nil {
		pterm.Error.Println("Login failed:", err)
		return
	}
	client, err := m.clients.GetByEmail(ctx, email)
	if err != nil || client == nil {
		pterm.Error.Println("Login failed")
		return
	}

	pterm.Success.Printfln("Welcome, %s", client.FullName())
	m.clientMenu(ctx, client)
}

func (m *Menu) registerClient(ctx context.Context) {
	var firstName, lastName, email, password string
	questions := []*survey.Question{
		{Name: "firstName", Prompt: &survey.Input{Message: "First name:"}},
		{Name: "lastName", Prompt: &survey.Input{Message: "Last name:"}},
		{Name: "email", Prompt: &survey.Input{Message: "Email:"}},
	}
	answers := struct {
		FirstName string
		LastName  string
		Email     string
	}{}
	if err := survey.Ask(questions, &answers); err != nil {
		return
	}
	firstName, lastName, email = answers.FirstName, answers.LastName, answers.Email
	if err := survey.AskOne(&survey.Password{Message: "Password:"}, &password); err != nil {
		return
	}

	client, err := m.clients.CreateClient(ctx, firstName, lastName, email, password)
	if err != nil {
		pterm.Error.Println("Could not register client:", err)
		return
	}
	pterm.Success.Printfln("Client %s registered", client.Email)
}

func (m *Menu) clientMenu(ctx context.Context, client *models.Client) {
	for {
		var choice string
		prompt := &survey.Select{
			Message: "Client menu:",
			Options: []string{
				"Open account", "Deposit", "Withdraw", "Transfer",
				"Statement", "Totals", "Logout",
			},
		}
		if err := survey.AskOne(prompt, &choice); err != nil {
			return
		}

		switch choice {
		case "Open account":
			m.openAccount(ctx, client)
		case "Deposit":
			m.deposit(ctx, client)
		case "Withdraw":
			m.withdraw(ctx, client)
		case "Transfer":
			m.transfer(ctx, client)
		case "Statement":
			m.statement(client)
		case "Totals":
			m.totals(client)
		case "Logout":
			return
		}
	}
}

func (m *Menu) openAccount(ctx context.Context, client *models.Client) {
	var accountType string
	prompt := &survey.Select{
		Message: "Account type:",
		Options: []string{string(models.AccountTypeCurrent), string(models.AccountTypeSavings)},
	}
	if err := survey.AskOne(prompt, &accountType); err != nil {
		return
	}
	balance, ok := m.askAmount("Initial balance (DH):")
	if !ok {
		return
	}

	account, err := m.accounts.CreateAccount(ctx, client, models.AccountType(accountType), balance)
	if err != nil {
		pterm.Error.Println("Could not open account:", err)
		return
	}
	pterm.Success.Printfln("Account %s opened with balance %s DH", account.AccountID, account.Balance().StringFixed(2))
}

// primary returns the client's primary account for mutations initiated from
// the menu, matching the reporting constraint.
func (m *Menu) primary(client *models.Client) (*models.Account, bool) {
	accounts := client.Accounts()
	if len(accounts) == 0 {
		pterm.Warning.Println("No account yet; open one first")
		return nil, false
	}
	return accounts[0], true
}

func (m *Menu) deposit(ctx context.Context, client *models.Client) {
	account, ok := m.primary(client)
	if !ok {
		return
	}
	amount, ok := m.askAmount("Amount to deposit (DH):")
	if !ok {
		return
	}
	description := m.askDescription()

	if _, err := m.engine.Deposit(ctx, account, amount, description); err != nil {
		pterm.Error.Println("Deposit rejected:", err)
		return
	}
	pterm.Success.Printfln("New balance: %s DH", account.Balance().StringFixed(2))
}

func (m *Menu) withdraw(ctx context.Context, client *models.Client) {
	account, ok := m.primary(client)
	if !ok {
		return
	}
	amount, ok := m.askAmount("Amount to withdraw (DH):")
	if !ok {
		return
	}
	description := m.askDescription()

	if _, err := m.engine.Withdraw(ctx, account, amount, description); err != nil {
		pterm.Error.Println("Withdrawal rejected:", err)
		return
	}
	pterm.Success.Printfln("New balance: %s DH", account.Balance().StringFixed(2))
}

func (m *Menu) transfer(ctx context.Context, client *models.Client) {
	source, ok := m.primary(client)
	if !ok {
		return
	}

	var destinationID string
	if err := survey.AskOne(&survey.Input{Message: "Destination account id:"}, &destinationID); err != nil {
		return
	}
	parsed, err := uuid.Parse(destinationID)
	if err != nil {
		pterm.Error.Println("Invalid account id")
		return
	}
	destination, err := m.accounts.GetByID(ctx, parsed)
	if err != nil || destination == nil {
		pterm.Error.Println("Destination account not found")
		return
	}

	amount, ok := m.askAmount("Amount to transfer (DH):")
	if !ok {
		return
	}
	description := m.askDescription()

	if _, err := m.engine.Transfer(ctx, source, destination, amount, description); err != nil {
		pterm.Error.Println("Transfer rejected:", err)
		return
	}
	pterm.Success.Printfln("New balance: %s DH", source.Balance().StringFixed(2))
}

func (m *Menu) statement(client *models.Client) {
	transactions, err := m.engine.SortTransactionsByDate(client, false)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	renderTransactions("Statement (newest first)", transactions)
}

func (m *Menu) totals(client *models.Client) {
	deposits, err := m.engine.TotalDeposits(client)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	withdrawals, _ := m.engine.TotalWithdrawals(client)
	transfers, _ := m.engine.TotalTransfers(client)

	data := pterm.TableData{
		{"Total deposits", deposits.StringFixed(2) + " DH"},
		{"Total withdrawals", withdrawals.StringFixed(2) + " DH"},
		{"Total transfers", transfers.StringFixed(2) + " DH"},
	}
	_ = pterm.DefaultTable.WithData(data).Render()
}

func (m *Menu) systemStatistics(ctx context.Context) {
	totalBalance, err := m.accounts.TotalSystemBalance(ctx)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	averageBalance, _ := m.accounts.AverageAccountBalance(ctx)
	accountCount, _ := m.accounts.TotalAccountCount(ctx)
	deposits, _ := m.engine.TotalSystemDeposits(ctx)
	withdrawals, _ := m.engine.TotalSystemWithdrawals(ctx)
	transfers, _ := m.engine.TotalSystemTransfers(ctx)
	transactionCount, _ := m.engine.TotalTransactionCount(ctx)

	pterm.DefaultSection.Println("System statistics")
	data := pterm.TableData{
		{"Accounts", fmt.Sprintf("%d", accountCount)},
		{"Total balance", totalBalance.StringFixed(2) + " DH"},
		{"Average balance", averageBalance.StringFixed(2) + " DH"},
		{"Transactions", fmt.Sprintf("%d", transactionCount)},
		{"Total deposits", deposits.StringFixed(2) + " DH"},
		{"Total withdrawals", withdrawals.StringFixed(2) + " DH"},
		{"Total transfers", transfers.StringFixed(2) + " DH"},
	}
	_ = pterm.DefaultTable.WithData(data).Render()
}

func (m *Menu) suspiciousActivity(ctx context.Context) {
	transactions, err := m.detector.SuspiciousTransactions(ctx)
	if err != nil {
		pterm.Error.Println(err)
		return
	}
	renderTransactions("Suspicious transactions (newest first)", transactions)
}

func (m *Menu) askAmount(message string) (decimal.Decimal, bool) {
	var raw string
	if err := survey.AskOne(&survey.Input{Message: message}, &raw); err != nil {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		pterm.Error.Println("Invalid amount")
		return decimal.Zero, false
	}
	return amount, true
}

func (m *Menu) askDescription() string {
	var description string
	// Blank is fine, the engine substitutes the per-type default.
	_ = survey.AskOne(&survey.Input{Message: "Description (optional):"}, &description)
	return description
}

func renderTransactions(title string, transactions []*models.Transaction) {
	if len(transactions) == 0 {
		pterm.Warning.Println("No transactions found")
		return
	}

	pterm.DefaultSection.Println(title)
	data := pterm.TableData{{"Date", "Type", "Amount", "Description"}}
	for _, txn := range transactions {
		amount := txn.Amount.StringFixed(2) + " DH"
		switch txn.Type {
		case models.TransactionTypeWithdrawal:
			amount = pterm.Red(amount)
		case models.TransactionTypeDeposit:
			amount = pterm.Green(amount)
		case models.TransactionTypeTransfer:
			amount = pterm.Blue(amount)
		}
		data = append(data, []string{
			txn.Timestamp.Format("2006-01-02 15:04:05"),
			string(txn.Type),
			amount,
			txn.Description,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
