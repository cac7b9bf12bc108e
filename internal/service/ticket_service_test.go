package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/parskala/internal/models"
	"github.com/parskala/internal/repository"

	"gorm.io/gorm"
)

func newTicketServiceForTest(db *gorm.DB) *TicketService {
	return NewTicketService(repository.NewTicketRepository(db), repository.NewOrderRepository(db), nil)
}

func TestCreateTicketWithFirstMessage(t *testing.T) {
	db := openTestDB(t, "ticket_create")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{
		UserID:  1,
		Subject: "مشکل در پرداخت",
		Message: "رسید پرداخت بارگذاری شد اما سفارش هنوز تایید نشده است.",
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if !strings.HasPrefix(ticket.TicketNo, "TKT-") {
		t.Fatalf("unexpected ticket no: %s", ticket.TicketNo)
	}
	if ticket.Status != models.TicketStatusOpen {
		t.Fatalf("expected open status, got %s", ticket.Status)
	}
	if ticket.Priority != models.TicketPriorityMedium {
		t.Fatalf("expected default medium priority, got %s", ticket.Priority)
	}
	if len(ticket.Messages) != 1 || ticket.Messages[0].IsAdminReply {
		t.Fatalf("expected one user message, got %+v", ticket.Messages)
	}

	messages, err := svc.ListMessages(ticket.ID, 1, false)
	if err != nil {
		t.Fatalf("list messages failed: %v", err)
	}
	if len(messages) != 1 {
		t.Fatalf("expected 1 persisted message, got %d", len(messages))
	}
}

func TestCreateTicketRejectsEmptySubjectOrMessage(t *testing.T) {
	db := openTestDB(t, "ticket_create_empty")
	svc := newTicketServiceForTest(db)

	if _, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "  ", Message: "متن"}); !errors.Is(err, ErrTicketSubjectInvalid) {
		t.Fatalf("expected empty subject rejected, got: %v", err)
	}
	if _, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "موضوع", Message: "  "}); !errors.Is(err, ErrTicketMessageEmpty) {
		t.Fatalf("expected empty message rejected, got: %v", err)
	}
	if _, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: strings.Repeat("x", 201), Message: "متن"}); !errors.Is(err, ErrTicketSubjectInvalid) {
		t.Fatalf("expected over-long subject rejected, got: %v", err)
	}
}

func TestCreateTicketRejectsForeignOrder(t *testing.T) {
	db := openTestDB(t, "ticket_create_order")
	svc := newTicketServiceForTest(db)

	order := models.Order{
		OrderNo: "ORD-20260829120000123456",
		UserID:  2,
		Status:  models.OrderStatusPending,
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("create order failed: %v", err)
	}

	_, err := svc.CreateTicket(CreateTicketInput{
		UserID:  1,
		OrderID: &order.ID,
		Subject: "سفارش اشتباه",
		Message: "این سفارش متعلق به من نیست",
	})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected foreign order rejected, got: %v", err)
	}
}

func TestTicketPriorityNormalization(t *testing.T) {
	db := openTestDB(t, "ticket_priority")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{
		UserID:   1,
		Subject:  "فوری",
		Message:  "نیاز به پیگیری فوری",
		Priority: " URGENT ",
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if ticket.Priority != models.TicketPriorityUrgent {
		t.Fatalf("expected urgent, got %s", ticket.Priority)
	}

	ticket, err = svc.CreateTicket(CreateTicketInput{
		UserID:   1,
		Subject:  "اولویت ناشناخته",
		Message:  "متن",
		Priority: "whatever",
	})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if ticket.Priority != models.TicketPriorityMedium {
		t.Fatalf("expected fallback to medium, got %s", ticket.Priority)
	}
}

func TestPostMessageUserBlockedAfterResolve(t *testing.T) {
	db := openTestDB(t, "ticket_post_resolved")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "سوال", Message: "متن اولیه"})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if _, err := svc.UpdateTicketStatus(ticket.ID, models.TicketStatusResolved); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	_, err = svc.PostMessage(PostMessageInput{TicketID: ticket.ID, SenderID: 1, IsAdmin: false, Message: "پاسخ کاربر"})
	if !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("expected user reply blocked on resolved ticket, got: %v", err)
	}
}

func TestPostMessageAdminReopensResolvedTicket(t *testing.T) {
	db := openTestDB(t, "ticket_admin_reopen")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "سوال", Message: "متن اولیه"})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if _, err := svc.UpdateTicketStatus(ticket.ID, models.TicketStatusResolved); err != nil {
		t.Fatalf("resolve failed: %v", err)
	}

	msg, err := svc.PostMessage(PostMessageInput{TicketID: ticket.ID, SenderID: 9, IsAdmin: true, Message: "پاسخ پشتیبانی"})
	if err != nil {
		t.Fatalf("admin reply failed: %v", err)
	}
	if !msg.IsAdminReply {
		t.Fatalf("expected admin reply flag")
	}

	reloaded, err := svc.GetTicketForAdmin(ticket.ID)
	if err != nil {
		t.Fatalf("reload ticket failed: %v", err)
	}
	if reloaded.Status != models.TicketStatusInProgress {
		t.Fatalf("expected ticket reopened to in_progress, got %s", reloaded.Status)
	}
}

func TestPostMessageClosedTicketIsTerminal(t *testing.T) {
	db := openTestDB(t, "ticket_closed_terminal")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "بسته", Message: "متن"})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	if _, err := svc.UpdateTicketStatus(ticket.ID, models.TicketStatusClosed); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	if _, err := svc.PostMessage(PostMessageInput{TicketID: ticket.ID, SenderID: 1, IsAdmin: false, Message: "هنوز مشکل دارم"}); !errors.Is(err, ErrTicketClosed) {
		t.Fatalf("expected user reply blocked on closed ticket, got: %v", err)
	}
	if _, err := svc.PostMessage(PostMessageInput{TicketID: ticket.ID, SenderID: 9, IsAdmin: true, Message: "پاسخ"}); err != nil {
		t.Fatalf("expected admin reply allowed on closed ticket, got: %v", err)
	}
	reloaded, err := svc.GetTicketForAdmin(ticket.ID)
	if err != nil {
		t.Fatalf("reload ticket failed: %v", err)
	}
	if reloaded.Status != models.TicketStatusClosed {
		t.Fatalf("admin reply must not reopen a closed ticket, got %s", reloaded.Status)
	}
	if _, err := svc.UpdateTicketStatus(ticket.ID, models.TicketStatusOpen); !errors.Is(err, ErrTicketStatusInvalid) {
		t.Fatalf("expected closed ticket not reopenable, got: %v", err)
	}
}

func TestPostMessageChecksOwnership(t *testing.T) {
	db := openTestDB(t, "ticket_ownership")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "سوال", Message: "متن"})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}

	_, err = svc.PostMessage(PostMessageInput{TicketID: ticket.ID, SenderID: 2, IsAdmin: false, Message: "نفوذ"})
	if !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected other user blocked, got: %v", err)
	}
	if _, err := svc.ListMessages(ticket.ID, 2, false); !errors.Is(err, ErrTicketNotFound) {
		t.Fatalf("expected other user list blocked, got: %v", err)
	}
}

func TestUpdateTicketStatusSameStatusIsNoop(t *testing.T) {
	db := openTestDB(t, "ticket_status_noop")
	svc := newTicketServiceForTest(db)

	ticket, err := svc.CreateTicket(CreateTicketInput{UserID: 1, Subject: "سوال", Message: "متن"})
	if err != nil {
		t.Fatalf("create ticket failed: %v", err)
	}
	same, err := svc.UpdateTicketStatus(ticket.ID, models.TicketStatusOpen)
	if err != nil {
		t.Fatalf("same-status update failed: %v", err)
	}
	if same.Status != models.TicketStatusOpen {
		t.Fatalf("expected open, got %s", same.Status)
	}
}
