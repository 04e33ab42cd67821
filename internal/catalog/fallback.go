// internal/catalog/fallback.go
package catalog

import "mafatih/internal/models"

func fallbackCategories() []models.Category {
	return []models.Category{
		{ID: 1, Title: "علوم القرآن"},
		{ID: 2, Title: "الفقه وأصوله"},
		{ID: 6, Title: "التفسير"},
		{ID: 7, Title: "العقيدة"},
		{ID: 11, Title: "الآداب"},
		{ID: 15, Title: "الدعوة إلى الله"},
		{ID: 16, Title: "السيرة النبوية"},
	}
}

// fallbackContent is served whenever the live catalog cannot be read.
func fallbackContent() []models.ContentItem {
	return []models.ContentItem{
		{
			ID: 1, Title: "تفسير سورة الفاتحة",
			Description: "شرح مفصل لسورة الفاتحة وأحكامها من كتاب تيسير الكريم الرحمن",
			ContentType: ContentTypeBook, CategoryID: 1, CategoryName: "تفسير القرآن",
			AuthorID: 1, AuthorName: "الشيخ عبد الرحمن السعدي",
			URL: "https://islamhouse.com/ar/books/12345", Language: "ar", PublicationDate: "2024-01-01",
			Tags: []string{"تفسير", "قرآن", "فاتحة"}, PriorityLevel: 10, FileSize: "45 صفحة",
		},
		{
			ID: 2, Title: "أحكام الوضوء والطهارة",
			Description: "شرح شامل لأحكام الوضوء وآدابه من فقه العبادات",
			ContentType: ContentTypeBook, CategoryID: 2, CategoryName: "الفقه",
			AuthorID: 2, AuthorName: "الشيخ محمد بن عثيمين",
			URL: "https://islamhouse.com/ar/books/67890", Language: "ar", PublicationDate: "2024-01-02",
			Tags: []string{"فقه", "طهارة", "وضوء"}, PriorityLevel: 9, FileSize: "78 صفحة",
		},
		{
			ID: 3, Title: "حصن المسلم - أذكار الصباح والمساء",
			Description: "مجموعة من الأذكار المأثورة للصباح والمساء من الكتاب والسنة",
			ContentType: ContentTypeBook, CategoryID: 3, CategoryName: "الأذكار والأدعية",
			AuthorID: 3, AuthorName: "الشيخ سعيد بن وهف القحطاني",
			URL: "https://islamhouse.com/ar/books/11111", Language: "ar", PublicationDate: "2024-01-03",
			Tags: []string{"أذكار", "دعاء", "صباح", "مساء"}, PriorityLevel: 10, FileSize: "156 صفحة",
		},
		{
			ID: 4, Title: "آداب الدعاء في الإسلام",
			Description: "شرح آداب الدعاء وأوقاته المستجابة والأدعية المأثورة",
			ContentType: ContentTypeBook, CategoryID: 4, CategoryName: "الأخلاق والآداب",
			AuthorID: 4, AuthorName: "الشيخ صالح الفوزان",
			URL: "https://islamhouse.com/ar/books/22222", Language: "ar", PublicationDate: "2024-01-04",
			Tags: []string{"دعاء", "آداب", "أخلاق"}, PriorityLevel: 8, FileSize: "92 صفحة",
		},
		{
			ID: 5, Title: "قصص الأنبياء للأطفال",
			Description: "سلسلة عن قصص الأنبياء والعبر المستفادة مع الرسوم التوضيحية",
			ContentType: ContentTypeBook, CategoryID: 5, CategoryName: "السيرة والتاريخ",
			AuthorID: 5, AuthorName: "أحمد بهجت",
			URL: "https://islamhouse.com/ar/books/33333", Language: "ar", PublicationDate: "2024-01-05",
			Tags: []string{"قصص", "أنبياء", "سيرة", "أطفال"}, PriorityLevel: 9, FileSize: "234 صفحة",
		},
		{
			ID: 6, Title: "فضائل الصلاة وأحكامها",
			Description: "كتاب شامل عن فضائل الصلاة وأهميتها وأحكامها الفقهية",
			ContentType: ContentTypeBook, CategoryID: 6, CategoryName: "العبادات",
			AuthorID: 6, AuthorName: "الشيخ عبد العزيز بن باز",
			URL: "https://islamhouse.com/ar/books/44444", Language: "ar", PublicationDate: "2024-01-06",
			Tags: []string{"صلاة", "عبادة", "فضائل"}, PriorityLevel: 10, FileSize: "187 صفحة",
		},
		{
			ID: 7, Title: "زاد المعاد في هدي خير العباد",
			Description: "كتاب موسوعي في السيرة النبوية والفقه والأخلاق",
			ContentType: ContentTypeBook, CategoryID: 2, CategoryName: "الفقه",
			AuthorID: 7, AuthorName: "ابن قيم الجوزية",
			URL: "https://islamhouse.com/ar/books/55555", Language: "ar", PublicationDate: "2024-01-07",
			Tags: []string{"سيرة", "فقه", "أحكام"}, PriorityLevel: 10, FileSize: "956 صفحة",
		},
		{
			ID: 8, Title: "شرح الأسماء الحسنى",
			Description: "شرح مفصل لأسماء الله الحسنى ومعانيها وأثرها في حياة المسلم",
			ContentType: ContentTypeBook, CategoryID: 7, CategoryName: "العقيدة",
			AuthorID: 8, AuthorName: "الشيخ عبد الرزاق البدر",
			URL: "https://islamhouse.com/ar/books/66666", Language: "ar", PublicationDate: "2024-01-08",
			Tags: []string{"أسماء", "عقيدة", "توحيد"}, PriorityLevel: 9, FileSize: "312 صفحة",
		},
		{
			ID: 9, Title: "الرحيق المختوم",
			Description: "السيرة النبوية الشريفة - بحث في السيرة النبوية على صاحبها أفضل الصلاة والسلام",
			ContentType: ContentTypeBook, CategoryID: 16, CategoryName: "السيرة النبوية",
			AuthorID: 9, AuthorName: "صفي الرحمن المباركفوري",
			URL: "https://islamhouse.com/ar/books/77777", Language: "ar", PublicationDate: "2024-01-09",
			Tags: []string{"سيرة", "نبوية", "محمد"}, PriorityLevel: 10, FileSize: "412 صفحة",
		},
		{
			ID: 10, Title: "كتاب التوحيد",
			Description: "كتاب التوحيد الذي هو حق الله على العبيد",
			ContentType: ContentTypeBook, CategoryID: 7, CategoryName: "العقيدة",
			AuthorID: 10, AuthorName: "محمد بن عبد الوهاب",
			URL: "https://islamhouse.com/ar/books/88888", Language: "ar", PublicationDate: "2024-01-10",
			Tags: []string{"توحيد", "عقيدة", "إيمان"}, PriorityLevel: 10, FileSize: "125 صفحة",
		},
	}
}
