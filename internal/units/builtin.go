package units

import "announcer/internal/domain"

//nolint:gochecknoglobals // Read-only table.
var builtin = []domain.Unit{
	{Name: "Bilgisayar Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/bilgisayar/duyuru/birim/193", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Yapay Zeka Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/yapayzeka/duyuru/birim/10334", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Biyomühendislik", URL: "https://mdbf.btu.edu.tr/tr/biyomuh/duyuru/birim/149", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Çevre Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/cevre/duyuru/birim/148", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Elektrik-Elektronik Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/elektrik/duyuru/birim/146", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Endüstri Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/endustri/duyuru/birim/151", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Fizik", URL: "https://mdbf.btu.edu.tr/tr/fizik/duyuru/birim/10074", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Gıda Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/gida/duyuru/birim/144", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "İnşaat Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/insaat/duyuru/birim/143", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Kimya", URL: "https://mdbf.btu.edu.tr/tr/kimya/duyuru/birim/140", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Kimya Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/kimyamuh/duyuru/birim/142", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Makine Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/makine/duyuru/birim/137", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Matematik", URL: "https://mdbf.btu.edu.tr/tr/matematik/duyuru/birim/141", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Mekatronik Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/mekatronik/duyuru/birim/139", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Metalurji ve Malzeme Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/metalurji/duyuru/birim/138", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Polimer Mühendisliği", URL: "https://mdbf.btu.edu.tr/tr/polimer/duyuru/birim/152", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Veri Bilimi", URL: "https://mdbf.btu.edu.tr/tr/veribilimi/duyuru/birim/10333", Faculty: "Mühendislik ve Doğa Bilimleri Fakültesi"},
	{Name: "Orman Endüstri Mühendisliği", URL: "https://of.btu.edu.tr/tr/ormanendustri/duyuru/birim/157", Faculty: "Orman Fakültesi"},
	{Name: "Orman Mühendisliği", URL: "https://of.btu.edu.tr/tr/orman/duyuru/birim/156", Faculty: "Orman Fakültesi"},
	{Name: "İktisat", URL: "https://itbf.btu.edu.tr/tr/imtb/duyuru/birim/10268", Faculty: "İnsan ve Toplum Bilimleri Fakültesi"},
	{Name: "İşletme", URL: "https://itbf.btu.edu.tr/tr/business/duyuru/birim/10045", Faculty: "İnsan ve Toplum Bilimleri Fakültesi"},
	{Name: "Psikoloji", URL: "https://itbf.btu.edu.tr/tr/psikoloji/duyuru/birim/155", Faculty: "İnsan ve Toplum Bilimleri Fakültesi"},
	{Name: "Sosyoloji", URL: "https://itbf.btu.edu.tr/tr/sosyoloji/duyuru/birim/10024", Faculty: "İnsan ve Toplum Bilimleri Fakültesi"},
	{Name: "Uluslararası İlişkiler", URL: "https://itbf.btu.edu.tr/tr/ui/duyuru/birim/153", Faculty: "İnsan ve Toplum Bilimleri Fakültesi"},
	{Name: "Uluslararası Ticaret ve Lojistik", URL: "https://itbf.btu.edu.tr/tr/utl/duyuru/birim/154", Faculty: "İnsan ve Toplum Bilimleri Fakültesi"},
	{Name: "Mimarlık", URL: "https://mtf.btu.edu.tr/tr/mimarlik/duyuru/birim/145", Faculty: "Mimarlık ve Tasarım Fakültesi"},
	{Name: "Peyzaj Mimarlığı", URL: "https://mtf.btu.edu.tr/tr/peyzaj/duyuru/birim/10053", Faculty: "Mimarlık ve Tasarım Fakültesi"},
	{Name: "Şehir ve Bölge Planlama", URL: "https://mtf.btu.edu.tr/tr/sehir/duyuru/birim/150", Faculty: "Mimarlık ve Tasarım Fakültesi"},
	{Name: "Diş Hekimliği", URL: "https://df.btu.edu.tr/tr/diy/duyuru/birim/10004", Faculty: "Diş Hekimliği Fakültesi"},
	{Name: "Genel Aile Hekimliği", URL: "https://df.btu.edu.tr/tr/gigm/duyuru/birim/10005", Faculty: "Diş Hekimliği Fakültesi"},
}
