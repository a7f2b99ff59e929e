package ui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"salonctl/internal/booking"
	"salonctl/internal/calendar"
	"salonctl/internal/models"
	"salonctl/internal/salon"
	"salonctl/internal/session"
	"salonctl/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LoginView ViewState = iota
	CategoryView
	ServiceView
	DateView
	ProviderView
	TimeView
	ConfirmView
	AskCalendarView
	CalendarOptionsView
	NextStepsView
)

// Model represents the TUI application state.
type Model struct {
	ctx   context.Context
	view  ViewState
	flow  *booking.Flow
	store *session.Store
	cfg   *shared.Config

	width  int
	height int

	emailInput    textinput.Model
	passwordInput textinput.Model
	dateInput     textinput.Model
	registering   bool

	categoryList list.Model
	serviceList  list.Model
	providerList list.Model
	slotList     list.Model

	err    error
	notice string
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, flow *booking.Flow, store *session.Store, cfg *shared.Config) *Model {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 100
	email.Focus()

	password := textinput.New()
	password.Placeholder = "mot de passe"
	password.EchoMode = textinput.EchoPassword
	password.CharLimit = 100

	date := textinput.New()
	date.Placeholder = time.Now().Format("2006-01-02")
	date.CharLimit = 10

	categories := []list.Item{
		categoryItem{category: models.Barber},
		categoryItem{category: models.Esthetician},
	}
	categoryList := list.New(categories, list.NewDefaultDelegate(), 0, 0)
	categoryList.Title = "Prendre rendez-vous"

	return &Model{
		ctx:           ctx,
		view:          LoginView,
		flow:          flow,
		store:         store,
		cfg:           cfg,
		emailInput:    email,
		passwordInput: password,
		dateInput:     date,
		categoryList:  categoryList,
		help:          help.New(),
		keys:          newKeyMap(),
	}
}

// Init decides the starting view: straight past login for a stored session,
// and straight to next steps when a completed booking is on record.
func (m *Model) Init() tea.Cmd {
	if !m.store.IsAuthenticated() {
		return textinput.Blink
	}

	if sess, err := m.store.Current(); err == nil && sess != nil {
		m.flow.SetEmail(sess.Email)
	}
	m.store.Touch()

	if err := m.flow.Resume(); err == nil && m.flow.State() == booking.StateNextSteps {
		m.view = NextStepsView
		return nil
	}

	m.view = CategoryView
	return nil
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.categoryList.SetSize(msg.Width-4, msg.Height-8)
		if m.serviceList.Width() == 0 {
			m.serviceList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.providerList.Width() == 0 {
			m.providerList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.slotList.Width() == 0 {
			m.slotList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case tea.KeyMsg:
		// Any key press counts as activity for the inactivity timer.
		m.store.Touch()

		switch m.view {
		case LoginView:
			return m.handleLoginKeys(msg)
		case CategoryView:
			return m.handleCategoryKeys(msg)
		case ServiceView:
			return m.handleServiceKeys(msg)
		case DateView:
			return m.handleDateKeys(msg)
		case ProviderView:
			return m.handleProviderKeys(msg)
		case TimeView:
			return m.handleTimeKeys(msg)
		case ConfirmView:
			return m.handleConfirmKeys(msg)
		case AskCalendarView:
			return m.handleAskCalendarKeys(msg)
		case CalendarOptionsView:
			return m.handleCalendarOptionsKeys(msg)
		case NextStepsView:
			return m.handleNextStepsKeys(msg)
		}

	case SessionExpiredMsg:
		m.view = LoginView
		m.registering = false
		m.err = nil
		m.notice = "Session expirée pour cause d'inactivité"
		m.emailInput.Focus()
		m.passwordInput.Blur()
		m.passwordInput.SetValue("")
		return m, textinput.Blink

	case authDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = ""
		m.flow.SetEmail(msg.session.Email)
		m.view = CategoryView
		return m, nil

	case catalogFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = CategoryView
			return m, nil
		}
		m.err = nil
		m.buildServiceList()
		m.view = ServiceView
		return m, nil

	case slotsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = DateView
			return m, nil
		}
		m.err = nil
		m.buildSlotList()
		m.view = TimeView
		return m, nil

	case submitDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = ConfirmView
			return m, nil
		}
		m.err = nil
		m.notice = "Rendez-vous pris avec succès !"
		m.view = AskCalendarView
		return m, nil

	case calendarDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.notice = msg.notice
		m.flow.CalendarDone()
		m.view = NextStepsView
		return m, nil
	}

	return m.updateInputs(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case LoginView:
		return m.renderLogin()
	case CategoryView:
		return m.renderList(m.categoryList)
	case ServiceView:
		return m.renderList(m.serviceList)
	case DateView:
		return m.renderDate()
	case ProviderView:
		return m.renderList(m.providerList)
	case TimeView:
		return m.renderTime()
	case ConfirmView:
		return m.renderConfirm()
	case AskCalendarView:
		return m.renderAskCalendar()
	case CalendarOptionsView:
		return m.renderCalendarOptions()
	case NextStepsView:
		return m.renderNextSteps()
	default:
		return ""
	}
}

func (m *Model) handleLoginKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab", "shift+tab":
		if m.emailInput.Focused() {
			m.emailInput.Blur()
			m.passwordInput.Focus()
		} else {
			m.passwordInput.Blur()
			m.emailInput.Focus()
		}
		return m, textinput.Blink
	case "ctrl+r":
		m.registering = !m.registering
		return m, nil
	case "enter":
		if m.emailInput.Focused() {
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, textinput.Blink
		}
		return m, m.authenticate()
	}

	var cmd tea.Cmd
	if m.emailInput.Focused() {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) handleCategoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "enter":
		if item, ok := m.categoryList.SelectedItem().(categoryItem); ok {
			return m, m.loadCatalog(item.category)
		}
	}

	var cmd tea.Cmd
	m.categoryList, cmd = m.categoryList.Update(msg)
	return m, cmd
}

func (m *Model) handleServiceKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "esc":
		m.view = CategoryView
		return m, nil
	case "enter":
		if item, ok := m.serviceList.SelectedItem().(offeringItem); ok {
			if err := m.flow.SetOffering(item.offering.ID); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.dateInput.SetValue("")
			m.dateInput.Focus()
			m.view = DateView
			return m, textinput.Blink
		}
	}

	var cmd tea.Cmd
	m.serviceList, cmd = m.serviceList.Update(msg)
	return m, cmd
}

func (m *Model) handleDateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, m.quit()
	case "esc":
		m.view = ServiceView
		return m, nil
	case "enter":
		if err := m.flow.SetDate(m.dateInput.Value()); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.buildProviderList()
		m.view = ProviderView
		return m, nil
	}

	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(msg)
	return m, cmd
}

func (m *Model) handleProviderKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "esc":
		m.view = DateView
		return m, nil
	case "enter":
		if item, ok := m.providerList.SelectedItem().(providerItem); ok {
			return m, m.selectProvider(item.provider.ID)
		}
	}

	var cmd tea.Cmd
	m.providerList, cmd = m.providerList.Update(msg)
	return m, cmd
}

func (m *Model) handleTimeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "esc":
		m.view = ProviderView
		return m, nil
	case "enter":
		if item, ok := m.slotList.SelectedItem().(slotItem); ok {
			if err := m.flow.SetTime(item.slot.Clock()); err != nil {
				m.err = err
				return m, nil
			}
			m.err = nil
			m.view = ConfirmView
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.slotList, cmd = m.slotList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "n", "esc":
		m.view = TimeView
		return m, nil
	case "y", "enter":
		return m, m.submit()
	}
	return m, nil
}

func (m *Model) handleAskCalendarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "y":
		m.flow.AnswerCalendar(true)
		m.view = CalendarOptionsView
		return m, nil
	case "n":
		m.flow.AnswerCalendar(false)
		m.view = NextStepsView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleCalendarOptionsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "g":
		return m, m.exportGoogle()
	case "i":
		return m, m.exportICS()
	case "s", "esc":
		m.flow.CalendarDone()
		m.view = NextStepsView
		return m, nil
	}
	return m, nil
}

func (m *Model) handleNextStepsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, m.quit()
	case "r":
		if err := m.flow.StartOver(); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.notice = ""
		m.view = CategoryView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case CategoryView:
		m.categoryList, cmd = m.categoryList.Update(msg)
	case ServiceView:
		m.serviceList, cmd = m.serviceList.Update(msg)
	case ProviderView:
		m.providerList, cmd = m.providerList.Update(msg)
	case TimeView:
		m.slotList, cmd = m.slotList.Update(msg)
	}
	return m, cmd
}

func (m *Model) authenticate() tea.Cmd {
	creds := salon.Credentials{
		Email:    m.emailInput.Value(),
		Password: m.passwordInput.Value(),
	}
	register := m.registering

	return func() tea.Msg {
		var sess *models.Session
		var err error
		if register {
			sess, err = m.store.Register(m.ctx, creds)
		} else {
			sess, err = m.store.Login(m.ctx, creds)
		}
		return authDoneMsg{session: sess, err: err}
	}
}

func (m *Model) loadCatalog(cat models.Category) tea.Cmd {
	return func() tea.Msg {
		return catalogFetchedMsg{err: m.flow.LoadCatalog(m.ctx, cat)}
	}
}

func (m *Model) selectProvider(id string) tea.Cmd {
	return func() tea.Msg {
		return slotsFetchedMsg{err: m.flow.SetProvider(m.ctx, id)}
	}
}

func (m *Model) submit() tea.Cmd {
	return func() tea.Msg {
		return submitDoneMsg{err: m.flow.Submit(m.ctx)}
	}
}

func (m *Model) exportGoogle() tea.Cmd {
	return func() tea.Msg {
		confirmed := m.flow.Confirmed()
		if confirmed == nil {
			return calendarDoneMsg{err: fmt.Errorf("aucune information de rendez-vous disponible")}
		}

		event, err := calendar.NewEvent(*confirmed, m.cfg.API.SalonLocation, time.Local)
		if err != nil {
			return calendarDoneMsg{err: err}
		}
		if err := shared.OpenBrowser(event.GoogleLink()); err != nil {
			return calendarDoneMsg{err: err}
		}
		return calendarDoneMsg{notice: "Page Google Calendar ouverte dans le navigateur"}
	}
}

func (m *Model) exportICS() tea.Cmd {
	return func() tea.Msg {
		confirmed := m.flow.Confirmed()
		if confirmed == nil {
			return calendarDoneMsg{err: fmt.Errorf("aucune information de rendez-vous disponible")}
		}

		event, err := calendar.NewEvent(*confirmed, m.cfg.API.SalonLocation, time.Local)
		if err != nil {
			return calendarDoneMsg{err: err}
		}
		path := calendar.Filename(confirmed.Category)
		if err := calendar.Deliver(event, path); err != nil {
			return calendarDoneMsg{err: err}
		}
		return calendarDoneMsg{notice: fmt.Sprintf("Fichier de calendrier enregistré: %s", path)}
	}
}

// quit logs out before leaving so no token outlives the program.
func (m *Model) quit() tea.Cmd {
	return func() tea.Msg {
		m.store.Logout(m.ctx)
		return tea.Quit()
	}
}

func (m *Model) buildServiceList() {
	offerings := m.flow.Offerings()
	items := make([]list.Item, len(offerings))
	for i, offering := range offerings {
		items[i] = offeringItem{offering: offering}
	}
	m.serviceList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.serviceList.Title = "Choisir une prestation"
	m.serviceList.SetSize(m.width-4, m.height-8)
}

func (m *Model) buildProviderList() {
	providers := m.flow.Providers()
	items := make([]list.Item, len(providers))
	for i, provider := range providers {
		items[i] = providerItem{provider: provider}
	}
	m.providerList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	if m.flow.Draft().Category == models.Esthetician {
		m.providerList.Title = "Choisir une esthéticienne"
	} else {
		m.providerList.Title = "Choisir un coiffeur"
	}
	m.providerList.SetSize(m.width-4, m.height-8)
}

func (m *Model) buildSlotList() {
	slots := m.flow.Slots()
	items := make([]list.Item, len(slots))
	for i, slot := range slots {
		items[i] = slotItem{slot: slot}
	}
	m.slotList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.slotList.Title = fmt.Sprintf("Horaires du %s", m.flow.Draft().Date)
	m.slotList.SetSize(m.width-4, m.height-8)
}

func (m *Model) renderLogin() string {
	title := "Connexion"
	if m.registering {
		title = "Créer un compte"
	}

	var status string
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Erreur: %v", m.err))
	} else if m.notice != "" {
		status = styles.warn.Render(m.notice)
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "field")),
		key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		m.keys.enter,
		m.keys.quit,
	})

	return fmt.Sprintf("%s\n\n%s\n%s\n\n%s\n\n%s",
		styles.title.Render(title),
		m.emailInput.View(),
		m.passwordInput.View(),
		status,
		helpView,
	)
}

func (m *Model) renderList(l list.Model) string {
	var status string
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Erreur: %v", m.err)) + "\n"
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s", l.View(), status, helpView)
}

func (m *Model) renderDate() string {
	var status string
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Erreur: %v", m.err))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s",
		styles.title.Render("Date du rendez-vous"),
		m.dateInput.View(),
		status,
		helpView,
	)
}

func (m *Model) renderTime() string {
	var warning string
	if w := m.flow.Warning(); w != "" {
		warning = styles.warn.Render(w) + "\n"
	}
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s", m.slotList.View(), warning, helpView)
}

func (m *Model) renderConfirm() string {
	draft := m.flow.Draft()

	service := ""
	if draft.Offering != nil {
		service = draft.Offering.Label
	}
	providerName := ""
	for _, p := range m.flow.Providers() {
		if p.ID == draft.ProviderID {
			providerName = p.DisplayName()
			break
		}
	}

	var status string
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Erreur: %v", m.err)) + "\n"
	}

	title := styles.title.Render("Confirmer le rendez-vous ?")
	info := fmt.Sprintf("\nPrestation: %s\nAvec: %s\nLe: %s à %s\n", service, providerName, draft.Date, draft.Time)
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})

	return fmt.Sprintf("%s%s\n%s%s", title, info, status, helpView)
}

func (m *Model) renderAskCalendar() string {
	title := styles.ok.Render("✓ " + m.notice)
	question := "\nAjouter ce rendez-vous à votre calendrier ?\n"
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n%s", title, question, helpView)
}

func (m *Model) renderCalendarOptions() string {
	var status string
	if m.err != nil {
		status = styles.err.Render(fmt.Sprintf("Erreur: %v", m.err)) + "\n"
	}

	title := styles.title.Render("Ajouter au calendrier")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.google, m.keys.ics, m.keys.skip, m.keys.quit})
	return fmt.Sprintf("%s\n%s%s", title, status, helpView)
}

func (m *Model) renderNextSteps() string {
	title := styles.title.Render("Rendez-vous confirmé !")

	var details string
	if confirmed := m.flow.Confirmed(); confirmed != nil {
		details = fmt.Sprintf("\n%s avec %s\nLe %s\n", confirmed.OfferingLabel, confirmed.ProviderName, confirmed.AppointmentTime)
	}

	var notice string
	if m.notice != "" {
		notice = styles.ok.Render(m.notice) + "\n"
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.restart, m.keys.quit})
	return fmt.Sprintf("%s%s\n%s%s", title, details, notice, helpView)
}
