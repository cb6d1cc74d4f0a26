package config

import "time"

// Default returns the built-in configuration used when no file is supplied.
func Default() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:            "sqlite",
			DSN:               "file:news.db?_pragma=busy_timeout(5000)",
			DefaultAuthorID:   1,
			DefaultCategoryID: 1,
		},
		Logging: LoggingConfig{Level: "info"},
		HTTP: HTTPConfig{
			UserAgent:   defaultUserAgent,
			FeedTimeout: 15 * time.Second,
			PageTimeout: 15 * time.Second,
		},
		Pipeline: PipelineConfig{
			Mode:            "strict",
			ItemsPerFeed:    2,
			PolitenessDelay: time.Second,
			SyntheticCount:  1,
		},
		Extraction: ExtractionConfig{
			Strategies:        []string{"article", "story-body", "article-body", "article-class", "content-id", "main", "paragraphs"},
			MinChars:          200,
			MaxChars:          4000,
			ParagraphMinChars: 50,
			ParagraphLimit:    20,
			TitleSuffixes:     []string{"BBC News", "Reuters", "Al Jazeera", "CNN", "NPR", "TechCrunch"},
		},
		Composer: ComposerConfig{
			TitleTemplates: map[string][]string{
				"technology": {
					"Tech Breakthrough: {title}",
					"The Future of {title} - Expert Analysis",
					"{title}: What This Means for Innovation",
				},
				"business": {
					"Market Update: {title}",
					"Business Insight: {title}",
					"Economic Impact: {title}",
				},
				"world-news": {
					"Global Report: {title}",
					"International Update: {title}",
					"World News: {title} - Full Analysis",
				},
			},
			FallbackTitleTemplates: []string{
				"Exclusive Analysis: {title}",
				"Breaking Down: {title} - What You Need to Know",
				"Professional Insight: {title} and Its Implications",
				"In-Depth: {title}",
			},
			KeyFactCount:    5,
			KeyFactMinChars: 40,
			Byline:          "Professional News Team",
			Images:          defaultImages(),
			Topics:          defaultTopics(),
		},
		CacheHook: CacheHookConfig{
			URL:     "http://localhost:3001/api/posts?limit=1",
			Timeout: 3 * time.Second,
		},
		Sources: []SourceConfig{
			{Name: "BBC News", URL: "http://feeds.bbci.co.uk/news/rss.xml", Category: "world-news"},
			{Name: "Al Jazeera", URL: "https://www.aljazeera.com/xml/rss/all.xml", Category: "world-news"},
			{Name: "CNN World", URL: "http://rss.cnn.com/rss/edition_world.rss", Category: "world-news"},
			{Name: "TechCrunch", URL: "https://techcrunch.com/feed/", Category: "technology"},
			{Name: "NPR News", URL: "https://feeds.npr.org/1004/rss.xml", Category: "general"},
		},
	}
}

func defaultImages() ImagesConfig {
	const opts = "?w=1200&h=800&fit=crop&auto=format"
	return ImagesConfig{
		Catalog: map[string][]string{
			"technology": {"https://images.unsplash.com/photo-1518709268805-4e9042af2176" + opts},
			"business":   {"https://images.unsplash.com/photo-1444653614773-995cb1ef9efa" + opts},
			"world-news": {
				"https://images.unsplash.com/photo-1504384308090-c894fdcc538d" + opts,
				"https://images.unsplash.com/photo-1511895426328-dc8714191300" + opts,
			},
			"politics": {"https://images.unsplash.com/photo-1551135049-8a33b2fb2f5c" + opts},
			"health":   {"https://images.unsplash.com/photo-1576091160399-112ba8d25d1f" + opts},
			"science":  {"https://images.unsplash.com/photo-1532094349884-543bc11b234d" + opts},
			"general":  {"https://images.unsplash.com/photo-1588681664899-f142ff2dc9b1" + opts},
		},
		Descriptions: map[string]string{
			"technology": "Technology innovation and digital development",
			"business":   "Business news and economic analysis",
			"world-news": "World news and international events",
			"politics":   "Political developments and government news",
			"health":     "Health updates and medical news",
			"science":    "Scientific discoveries and research",
			"general":    "News coverage and current events",
		},
		Keywords: []KeywordImageConfig{
			{
				Keywords: []string{"ai", "artificial intelligence", "machine learning"},
				URL:      "https://images.unsplash.com/photo-1677442136019-21780ecad995" + opts,
			},
			{
				Keywords: []string{"climate", "environment", "weather"},
				URL:      "https://images.unsplash.com/photo-1611273426858-450d8e3c9fce" + opts,
			},
			{
				Keywords: []string{"finance", "market", "markets", "stocks"},
				URL:      "https://images.unsplash.com/photo-1611974789855-9c2a0a7236a3" + opts,
			},
			{
				Keywords: []string{"health", "medical", "medicine"},
				URL:      "https://images.unsplash.com/photo-1579684385127-1ef15d508118" + opts,
			},
		},
	}
}

func defaultTopics() []TopicConfig {
	return []TopicConfig{
		{
			Title:    "Global Digital Currency Framework Approved by G20 Nations",
			Category: "world-news",
			Excerpt:  "Historic agreement establishes international standards for digital currencies, addressing regulatory challenges and promoting financial innovation.",
			KeyPoints: []string{
				"Common regulatory framework adopted by 20 major economies",
				"Consumer protection measures standardized across borders",
				"Anti-money laundering protocols enhanced",
				"Interoperability between different digital currency systems",
			},
			Analysis: "This agreement represents a major step toward legitimizing digital currencies while addressing concerns about stability, security, and illicit use.",
			Image:    "https://images.unsplash.com/photo-1551135049-8a33b2fb2f5c?w=1200&h=800&fit=crop",
		},
		{
			Title:    "AI-Assisted Medical Diagnosis System Shows 95% Accuracy in Clinical Trials",
			Category: "technology",
			Excerpt:  "An artificial intelligence system demonstrates high accuracy in diagnosing complex medical conditions in a multi-hospital study.",
			KeyPoints: []string{
				"Tested across 50 hospitals with 100,000+ patient cases",
				"Outperforms human specialists in early detection",
				"Reduces diagnostic errors by 40%",
				"Integrates with existing hospital systems",
			},
			Analysis: "While not replacing doctors, this technology is a tool for improving diagnostic accuracy, particularly in resource-constrained settings.",
			Image:    "https://images.unsplash.com/photo-1559757148-5c350d0d3c56?w=1200&h=800&fit=crop",
		},
		{
			Title:    "Sustainable Agriculture Initiative Boosts Crop Yields by 30%",
			Category: "world-news",
			Excerpt:  "Farming techniques combining traditional knowledge with modern technology improve productivity while reducing environmental impact.",
			KeyPoints: []string{
				"Water usage reduced by 50% through precision irrigation",
				"Soil health improved using organic methods",
				"Biodiversity increased on participating farms",
				"Farmer incomes raised by an average of 25%",
			},
			Analysis: "The initiative shows that sustainable practices can be environmentally responsible and economically viable at the same time.",
			Image:    "https://images.unsplash.com/photo-1500382017468-9049fed747ef?w=1200&h=800&fit=crop",
		},
	}
}
