package service

import (
	"context"
	"testing"
)

func TestGetSettingsReturnsDefaultsWhenUnsaved(t *testing.T) {
	s := newTestStack(t)
	user := seedUser(t, s.db, "trader@example.com")

	settings, err := s.settings.GetSettings(context.Background(), user.ID.String())
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if settings.DefaultQuoteValidityDays != 30 {
		t.Errorf("validity days = %d, want 30", settings.DefaultQuoteValidityDays)
	}
	if settings.VATRegistered {
		t.Error("vat registered should default to false")
	}
}

func TestSaveSettingsCreatesThenReplaces(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()

	first, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{
		BusinessName:   "Smith Building Services",
		DefaultDayRate: "250",
		VATRegistered:  true,
		VATNumber:      "GB123456789",
	})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if first.DefaultDayRate == nil || *first.DefaultDayRate != 250 {
		t.Errorf("day rate = %v, want 250", first.DefaultDayRate)
	}

	second, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{
		BusinessName: "Smith & Son",
	})
	if err != nil {
		t.Fatalf("resave settings: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("upsert created a second record: %s vs %s", second.ID, first.ID)
	}

	// Full replace: fields absent from the second save are cleared
	stored, err := s.settings.GetSettings(ctx, uid)
	if err != nil {
		t.Fatalf("get settings: %v", err)
	}
	if stored.BusinessName != "Smith & Son" {
		t.Errorf("business name = %q", stored.BusinessName)
	}
	if stored.VATRegistered || stored.VATNumber != "" {
		t.Errorf("vat fields not cleared: registered=%v number=%q", stored.VATRegistered, stored.VATNumber)
	}
	if stored.DefaultDayRate != nil {
		t.Errorf("day rate not cleared: %v", *stored.DefaultDayRate)
	}
}

func TestSaveSettingsNormalizesValidityAndRate(t *testing.T) {
	s := newTestStack(t)
	ctx := context.Background()
	user := seedUser(t, s.db, "trader@example.com")
	uid := user.ID.String()

	settings, err := s.settings.SaveSettings(ctx, uid, SettingsRequest{
		DefaultDayRate:           "not a number",
		DefaultQuoteValidityDays: -7,
	})
	if err != nil {
		t.Fatalf("save settings: %v", err)
	}
	if settings.DefaultDayRate != nil {
		t.Errorf("unparsable rate stored as %v, want nil", *settings.DefaultDayRate)
	}
	if settings.DefaultQuoteValidityDays != 30 {
		t.Errorf("validity days = %d, want 30", settings.DefaultQuoteValidityDays)
	}
}
