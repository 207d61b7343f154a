package message

import (
	"strings"
	"testing"

	"announcer/internal/domain"
)

func TestAnnouncementFull(t *testing.T) {
	got := Announcement("Bilgisayar Mühendisliği", domain.Announcement{
		Title:   "Yeni Duyuru Başlığı",
		Link:    "https://bilgisayar.btu.edu.tr/duyuru/detay/77",
		Date:    "12.03.2024",
		Summary: "Ders kayıtları (güz) başladı.",
	})

	want := "🔔 *Yeni Duyuru \\- Bilgisayar Mühendisliği*\n\n" +
		"📢 *Yeni Duyuru Başlığı*\n" +
		"📅 Tarih: 12\\.03\\.2024\n" +
		"\n📝 Ders kayıtları \\(güz\\) başladı\\.\n" +
		"\n🔗 [Duyuruyu Oku](https://bilgisayar.btu.edu.tr/duyuru/detay/77)"

	if got != want {
		t.Fatalf("unexpected message:\n%s\nwant:\n%s", got, want)
	}
}

func TestAnnouncementOmitsEmptyFields(t *testing.T) {
	got := Announcement("Fizik", domain.Announcement{Title: "Sınav"})

	for _, unwanted := range []string{"📅", "📝", "🔗"} {
		if strings.Contains(got, unwanted) {
			t.Fatalf("expected %q to be omitted from %q", unwanted, got)
		}
	}

	if got != "🔔 *Yeni Duyuru \\- Fizik*\n\n📢 *Sınav*" {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestNoticeEscapesPlainText(t *testing.T) {
	got := Notice("❌ İşlem başarısız oldu. Lütfen (daha sonra) tekrar deneyin!")

	want := "❌ İşlem başarısız oldu\\. Lütfen \\(daha sonra\\) tekrar deneyin\\!"
	if got != want {
		t.Fatalf("unexpected notice: got %q want %q", got, want)
	}
}
