package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"eventpro-backend/models"
	"eventpro-backend/repository"
	"eventpro-backend/testutil"
	"eventpro-backend/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

func newStore(t *testing.T) (*repository.Store, *gorm.DB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	return repository.New(db), db
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 12, 0, 0, 0, time.UTC)
}

func count(t *testing.T, db *gorm.DB, model any, where string, args ...any) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Where(where, args...).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func TestCreateClientDefaultsToNew(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	client := &models.Client{FirstName: "Anna", LastName: "Ivanova", Email: "anna@example.com", Phone: "+79990000000"}
	if err := store.CreateClient(ctx, client); err != nil {
		t.Fatalf("create client: %v", err)
	}
	got, err := store.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatalf("get client: %v", err)
	}
	if got.Status != models.ClientStatusNew {
		t.Fatalf("status = %q, want %q", got.Status, models.ClientStatusNew)
	}
	if got.CreatedAt.IsZero() {
		t.Fatal("created_at not set")
	}
	if got.FullName() != "Anna Ivanova" {
		t.Fatalf("full name = %q", got.FullName())
	}
}

func TestInvalidChoiceIsConstraintError(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	err := store.CreateClient(ctx, &models.Client{FirstName: "A", LastName: "B", Email: "a@b.c", Phone: "1", Status: "bogus"})
	if !errors.Is(err, models.ErrConstraint) {
		t.Fatalf("expected constraint error, got %v", err)
	}

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	err = store.CreateEvent(ctx, &models.Event{
		ClientID:  client.ID,
		Name:      "Party",
		EventType: "picnic",
		Date:      date(2030, 6, 1),
		Location:  "Park",
		Budget:    models.MustMoney("10"),
	})
	if !errors.Is(err, models.ErrConstraint) {
		t.Fatalf("expected constraint error for event type, got %v", err)
	}
	if n := count(t, db, &models.Event{}, "1 = 1"); n != 0 {
		t.Fatalf("events = %d, want 0", n)
	}
}

func TestCreateEventRequiresClient(t *testing.T) {
	store, _ := newStore(t)

	err := store.CreateEvent(context.Background(), &models.Event{
		ClientID:  uuid.New(),
		Name:      "Orphan",
		EventType: models.CategoryOther,
		Date:      date(2030, 1, 1),
		Location:  "Nowhere",
		Budget:    models.MustMoney("1"),
	})
	var nf *models.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "client" {
		t.Fatalf("expected client not found, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	missing := uuid.New()

	checks := map[string]error{}
	_, checks["get client"] = store.GetClient(ctx, missing)
	_, checks["update client"] = store.UpdateClient(ctx, missing, &models.Client{})
	checks["delete client"] = store.DeleteClient(ctx, missing)
	_, checks["get event"] = store.GetEvent(ctx, missing)
	_, checks["event detail"] = store.EventDetail(ctx, missing)
	checks["delete event"] = store.DeleteEvent(ctx, missing)
	_, checks["get service"] = store.GetService(ctx, missing)
	checks["delete service"] = store.DeleteService(ctx, missing)
	_, checks["get task"] = store.GetTask(ctx, missing)
	checks["delete task"] = store.DeleteTask(ctx, missing)
	_, checks["complete task"] = store.SetTaskCompleted(ctx, missing, true)
	checks["delete user"] = store.DeleteUser(ctx, missing)
	checks["remove booking"] = store.RemoveBooking(ctx, missing, missing)
	_, checks["client events"] = store.ClientEvents(ctx, missing)

	for name, err := range checks {
		if !errors.Is(err, models.ErrNotFound) {
			t.Errorf("%s: expected not found, got %v", name, err)
		}
	}
}

func TestUpcomingEventsFollowStatus(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	event := testutil.InsertEvent(t, db, client.ID, "Wedding", date(2030, 6, 1), models.EventStatusPlanned, "1500.50")
	testutil.InsertEvent(t, db, client.ID, "Done", date(2020, 6, 1), models.EventStatusCompleted, "10")

	upcoming, err := store.UpcomingEvents(ctx, repository.UpcomingEventsLimit)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 1 || upcoming[0].ID != event.ID {
		t.Fatalf("upcoming = %+v, want the planned event", upcoming)
	}
	if upcoming[0].Client == nil || upcoming[0].Client.ID != client.ID {
		t.Fatal("upcoming event should carry its client")
	}

	if _, err := store.SetEventStatus(ctx, event.ID, models.EventStatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	upcoming, err = store.UpcomingEvents(ctx, repository.UpcomingEventsLimit)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 0 {
		t.Fatalf("cancelled event still upcoming: %+v", upcoming)
	}
}

func TestUpcomingEventsLimitAndOrder(t *testing.T) {
	store, db := newStore(t)
	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	for day := 7; day >= 1; day-- {
		testutil.InsertEvent(t, db, client.ID, "E", date(2030, 1, day), models.EventStatusConfirmed, "1")
	}

	upcoming, err := store.UpcomingEvents(context.Background(), repository.UpcomingEventsLimit)
	if err != nil {
		t.Fatalf("upcoming: %v", err)
	}
	if len(upcoming) != 5 {
		t.Fatalf("len = %d, want 5", len(upcoming))
	}
	for i, e := range upcoming {
		if e.Date.Day() != i+1 {
			t.Fatalf("position %d has day %d", i, e.Date.Day())
		}
	}
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	anna := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	acme := testutil.InsertClient(t, db, "John", "Smith", date(2024, 1, 2))
	if err := db.Model(acme).UpdateColumn("company", "Acme").Error; err != nil {
		t.Fatal(err)
	}

	for _, term := range []string{"ivan", "IVAN", "Ivan", "  ivan "} {
		got, err := store.ListClients(ctx, repository.ClientFilter{Search: term})
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(got) != 1 || got[0].ID != anna.ID {
			t.Fatalf("search %q = %+v, want only Anna", term, got)
		}
	}

	got, err := store.ListClients(ctx, repository.ClientFilter{Search: "acme"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ID != acme.ID {
		t.Fatalf("company search = %+v", got)
	}

	// Wildcards are literal.
	got, err = store.ListClients(ctx, repository.ClientFilter{Search: "%"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("%% matched %d clients", len(got))
	}

	all, err := store.ListClients(ctx, repository.ClientFilter{Search: "   "})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("blank search returned %d clients, want 2", len(all))
	}
}

func TestListOrdering(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	older := testutil.InsertClient(t, db, "Old", "One", date(2024, 1, 1))
	newer := testutil.InsertClient(t, db, "New", "One", date(2024, 2, 1))
	clients, err := store.ListClients(ctx, repository.ClientFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(clients) != 2 || clients[0].ID != newer.ID || clients[1].ID != older.ID {
		t.Fatalf("clients not newest first: %+v", clients)
	}

	early := testutil.InsertEvent(t, db, older.ID, "Early", date(2030, 1, 1), models.EventStatusPlanned, "1")
	late := testutil.InsertEvent(t, db, older.ID, "Late", date(2031, 1, 1), models.EventStatusPlanned, "1")
	events, err := store.ClientEvents(ctx, older.ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 2 || events[0].ID != late.ID || events[1].ID != early.ID {
		t.Fatalf("events not latest date first: %+v", events)
	}

	second := testutil.InsertTask(t, db, early.ID, "Second", date(2030, 1, 2), nil)
	first := testutil.InsertTask(t, db, early.ID, "First", date(2029, 12, 1), nil)
	tasks, err := store.ListTasks(ctx, repository.TaskFilter{EventID: early.ID})
	if err != nil {
		t.Fatal(err)
	}
	if len(tasks) != 2 || tasks[0].ID != first.ID || tasks[1].ID != second.ID {
		t.Fatalf("tasks not soonest first: %+v", tasks)
	}

	testutil.InsertService(t, db, "Zeta", models.CategoryBirthday, "1")
	testutil.InsertService(t, db, "Alpha", models.CategoryWedding, "1")
	testutil.InsertService(t, db, "Beta", models.CategoryBirthday, "1")
	services, err := store.ListServices(ctx, repository.ServiceFilter{})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, s := range services {
		names = append(names, s.Name)
	}
	want := []string{"Beta", "Zeta", "Alpha"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("services order = %v, want %v", names, want)
		}
	}
}

func TestFiltersAndPaging(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	other := testutil.InsertClient(t, db, "Boris", "Petrov", date(2024, 1, 2))
	testutil.InsertEvent(t, db, client.ID, "Garden party", date(2030, 1, 1), models.EventStatusPlanned, "1")
	testutil.InsertEvent(t, db, client.ID, "Gala", date(2030, 2, 1), models.EventStatusConfirmed, "1")
	testutil.InsertEvent(t, db, other.ID, "Summit", date(2030, 3, 1), models.EventStatusPlanned, "1")

	n, err := store.CountEvents(ctx, repository.EventFilter{Status: "planned"})
	if err != nil || n != 2 {
		t.Fatalf("planned count = %d, %v", n, err)
	}
	n, err = store.CountEvents(ctx, repository.EventFilter{ClientID: client.ID, Search: "GAR"})
	if err != nil || n != 1 {
		t.Fatalf("client+search count = %d, %v", n, err)
	}

	page, err := store.ListEvents(ctx, repository.EventFilter{Page: repository.Page{Limit: 2, Offset: 2}})
	if err != nil {
		t.Fatal(err)
	}
	if len(page) != 1 || page[0].Name != "Garden party" {
		t.Fatalf("second page = %+v", page)
	}
}

func TestDeleteClientCascades(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	other := testutil.InsertClient(t, db, "Boris", "Petrov", date(2024, 1, 2))
	svc := testutil.InsertService(t, db, "Catering", models.CategoryWedding, "100")

	for i := 0; i < 3; i++ {
		e := testutil.InsertEvent(t, db, client.ID, "E", date(2030, 1, i+1), models.EventStatusPlanned, "10")
		if _, err := store.BookService(ctx, e.ID, svc.ID, 2, nil); err != nil {
			t.Fatal(err)
		}
		testutil.InsertTask(t, db, e.ID, "Call", date(2030, 1, 1), nil)
	}
	kept := testutil.InsertEvent(t, db, other.ID, "Kept", date(2030, 5, 1), models.EventStatusPlanned, "10")
	testutil.InsertTask(t, db, kept.ID, "Keep me", date(2030, 1, 1), nil)

	if err := store.DeleteClient(ctx, client.ID); err != nil {
		t.Fatalf("delete client: %v", err)
	}

	if _, err := store.GetClient(ctx, client.ID); !errors.Is(err, models.ErrNotFound) {
		t.Fatalf("client still there: %v", err)
	}
	if n := count(t, db, &models.Event{}, "client_id = ?", client.ID); n != 0 {
		t.Fatalf("events left: %d", n)
	}
	if n := count(t, db, &models.EventService{}, "1 = 1"); n != 0 {
		t.Fatalf("bookings left: %d", n)
	}
	if n := count(t, db, &models.Task{}, "1 = 1"); n != 1 {
		t.Fatalf("tasks left: %d, want only the other client's", n)
	}
	if _, err := store.GetEvent(ctx, kept.ID); err != nil {
		t.Fatalf("other client's event removed: %v", err)
	}
	if _, err := store.GetService(ctx, svc.ID); err != nil {
		t.Fatalf("service removed: %v", err)
	}
}

func TestDeleteUserNullifiesAssignments(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	event := testutil.InsertEvent(t, db, client.ID, "E", date(2030, 1, 1), models.EventStatusPlanned, "1")
	user := testutil.InsertUser(t, db, "planner", "+15550001111")
	task := testutil.InsertTask(t, db, event.ID, "Book venue", date(2030, 1, 1), &user.ID)

	if err := store.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("delete user: %v", err)
	}
	got, err := store.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("task removed with its assignee: %v", err)
	}
	if got.AssignedToID != nil || got.AssignedTo != nil {
		t.Fatalf("task still assigned: %+v", got.AssignedToID)
	}
}

func TestTaskReferencesMustExist(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()
	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	event := testutil.InsertEvent(t, db, client.ID, "E", date(2030, 1, 1), models.EventStatusPlanned, "1")

	ghost := uuid.New()
	err := store.CreateTask(ctx, &models.Task{EventID: event.ID, Title: "T", DueDate: date(2030, 1, 1), AssignedToID: &ghost})
	var nf *models.NotFoundError
	if !errors.As(err, &nf) || nf.Entity != "user" {
		t.Fatalf("expected user not found, got %v", err)
	}

	task := &models.Task{EventID: event.ID, Title: "T", DueDate: date(2030, 1, 1)}
	if err := store.CreateTask(ctx, task); err != nil {
		t.Fatal(err)
	}
	if task.Priority != models.PriorityMedium || task.IsCompleted {
		t.Fatalf("defaults not applied: %+v", task)
	}
	done, err := store.SetTaskCompleted(ctx, task.ID, true)
	if err != nil || !done.IsCompleted {
		t.Fatalf("complete: %+v, %v", done, err)
	}
}

func TestBookServiceSnapshotsPrice(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	event := testutil.InsertEvent(t, db, client.ID, "E", date(2030, 1, 1), models.EventStatusPlanned, "1")
	svc := testutil.InsertService(t, db, "Catering", models.CategoryWedding, "100.00")

	booking, err := store.BookService(ctx, event.ID, svc.ID, 3, nil)
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if booking.Price.String() != "100.00" || booking.TotalPrice().String() != "300.00" {
		t.Fatalf("price %s total %s", booking.Price, booking.TotalPrice())
	}

	custom := models.MustMoney("80.50")
	if _, err := store.BookService(ctx, event.ID, svc.ID, 0, &custom); err != nil {
		t.Fatalf("book custom: %v", err)
	}

	svc.Price = models.MustMoney("150")
	if _, err := store.UpdateService(ctx, svc.ID, svc); err != nil {
		t.Fatalf("update service: %v", err)
	}

	detail, err := store.EventDetail(ctx, event.ID)
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if len(detail.Services) != 2 {
		t.Fatalf("bookings = %d", len(detail.Services))
	}
	for _, b := range detail.Services {
		if b.Price.String() == "150.00" {
			t.Fatal("booking followed the catalog price change")
		}
	}
	if detail.ServicesTotal.String() != "380.50" {
		t.Fatalf("services total = %s, want 380.50", detail.ServicesTotal)
	}

	if err := store.RemoveBooking(ctx, event.ID, booking.ID); err != nil {
		t.Fatalf("remove: %v", err)
	}
	left, err := store.EventServices(ctx, event.ID)
	if err != nil || len(left) != 1 {
		t.Fatalf("left = %d, %v", len(left), err)
	}
}

func TestUpdateClientKeepsCreatedAt(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	created := date(2024, 3, 1)
	client := testutil.InsertClient(t, db, "Anna", "Ivanova", created)

	updated, err := store.UpdateClient(ctx, client.ID, &models.Client{
		FirstName: "Anna",
		LastName:  "Petrova",
		Email:     "anna@example.com",
		Phone:     "1",
		Status:    models.ClientStatusActive,
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.LastName != "Petrova" || updated.Status != models.ClientStatusActive {
		t.Fatalf("update not applied: %+v", updated)
	}
	got, err := store.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !got.CreatedAt.Equal(created) {
		t.Fatalf("created_at moved to %v", got.CreatedAt)
	}
}

func TestUpdateEventRefreshesUpdatedAt(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	event := testutil.InsertEvent(t, db, client.ID, "Gala", date(2030, 6, 1), models.EventStatusPlanned, "1000")
	past := date(2024, 2, 1)
	backdate := func() {
		t.Helper()
		if err := db.Exec("UPDATE events SET created_at = ?, updated_at = ? WHERE id = ?", past, past, event.ID).Error; err != nil {
			t.Fatal(err)
		}
	}
	check := func(step string) {
		t.Helper()
		got, err := store.GetEvent(ctx, event.ID)
		if err != nil {
			t.Fatal(err)
		}
		if !got.UpdatedAt.After(past) {
			t.Errorf("%s: updated_at not refreshed: %v", step, got.UpdatedAt)
		}
		if !got.CreatedAt.Equal(past) {
			t.Errorf("%s: created_at moved to %v", step, got.CreatedAt)
		}
	}

	backdate()
	edit := *event
	edit.Name = "Winter Gala"
	if _, err := store.UpdateEvent(ctx, event.ID, &edit); err != nil {
		t.Fatalf("update: %v", err)
	}
	check("update")

	backdate()
	if _, err := store.SetEventStatus(ctx, event.ID, models.EventStatusConfirmed); err != nil {
		t.Fatalf("set status: %v", err)
	}
	check("set status")
}

func TestEditWithoutChoicesKeepsStoredValues(t *testing.T) {
	store, db := newStore(t)
	ctx := context.Background()

	client := testutil.InsertClient(t, db, "Anna", "Ivanova", date(2024, 1, 1))
	if _, err := store.UpdateClient(ctx, client.ID, &models.Client{
		FirstName: "Anna", LastName: "Ivanova", Email: "anna@example.com", Phone: "1", Status: models.ClientStatusArchived,
	}); err != nil {
		t.Fatal(err)
	}
	current, err := store.GetClient(ctx, client.ID)
	if err != nil {
		t.Fatal(err)
	}
	in, err := validation.ValidateClient(validation.ClientInput{
		FirstName: "Anna", LastName: "Petrova", Email: "anna@example.com", Phone: "1",
	}, current)
	if err != nil {
		t.Fatal(err)
	}
	edited, err := store.UpdateClient(ctx, client.ID, in)
	if err != nil {
		t.Fatal(err)
	}
	if edited.Status != models.ClientStatusArchived || edited.LastName != "Petrova" {
		t.Errorf("client after edit = %+v", edited)
	}

	event := testutil.InsertEvent(t, db, client.ID, "Gala", date(2030, 6, 1), models.EventStatusCancelled, "1000")
	in2, err := validation.ValidateEvent(validation.EventInput{
		ClientID: client.ID.String(), Name: "Gala 2", EventType: "wedding", Date: "2030-06-02",
		Location: "Hall", Budget: "1000", GuestCount: "50",
	}, event)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := store.UpdateEvent(ctx, event.ID, in2); err != nil {
		t.Fatal(err)
	}
	upcoming, err := store.UpcomingEvents(ctx, 5)
	if err != nil {
		t.Fatal(err)
	}
	if len(upcoming) != 0 {
		t.Errorf("cancelled event came back as upcoming: %+v", upcoming)
	}

	svc := testutil.InsertService(t, db, "DJ", models.CategoryBirthday, "100")
	if err := db.Model(svc).Update("is_available", false).Error; err != nil {
		t.Fatal(err)
	}
	svc.IsAvailable = false
	in3, err := validation.ValidateService(validation.ServiceInput{
		Name: "DJ", Category: "birthday", Description: "Music", Price: "120",
	}, svc)
	if err != nil {
		t.Fatal(err)
	}
	editedSvc, err := store.UpdateService(ctx, svc.ID, in3)
	if err != nil {
		t.Fatal(err)
	}
	if editedSvc.IsAvailable || editedSvc.DurationHours != 2 {
		t.Errorf("service after edit = %+v", editedSvc)
	}

	task := testutil.InsertTask(t, db, event.ID, "Call florist", date(2030, 5, 1), nil)
	if err := db.Model(task).Update("priority", models.PriorityHigh).Error; err != nil {
		t.Fatal(err)
	}
	task.Priority = models.PriorityHigh
	in4, err := validation.ValidateTask(validation.TaskInput{
		EventID: event.ID.String(), Title: "Call the florist", DueDate: "2030-05-02",
	}, task)
	if err != nil {
		t.Fatal(err)
	}
	editedTask, err := store.UpdateTask(ctx, task.ID, in4)
	if err != nil {
		t.Fatal(err)
	}
	if editedTask.Priority != models.PriorityHigh {
		t.Errorf("task priority after edit = %q", editedTask.Priority)
	}
}

func TestSyncUserUpserts(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()
	seen := date(2025, 1, 1)

	first, err := store.SyncUser(ctx, &models.User{Subject: "auth0|1", Email: "a@example.com", Name: "Ann"}, seen)
	if err != nil {
		t.Fatal(err)
	}
	second, err := store.SyncUser(ctx, &models.User{Subject: "auth0|1", Phone: "+15550001111"}, seen.Add(time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if first.ID != second.ID {
		t.Fatal("second sync created another user")
	}
	if second.Name != "Ann" || second.Phone != "+15550001111" {
		t.Fatalf("profile not merged: %+v", second)
	}
	users, err := store.ListUsers(ctx)
	if err != nil || len(users) != 1 {
		t.Fatalf("users = %d, %v", len(users), err)
	}
}
