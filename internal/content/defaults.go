package content

// Defaults returns the built-in portfolio.
func Defaults() []Panel {
	return []Panel{
		{
			Slug:       "github",
			Label:      "GitHub",
			Title:      "GitHub Profile",
			Glyph:      "gh",
			Color:      "#313244",
			Heading:    "BRYAN GOMES",
			Subheading: "@foxzinnx",
			Sections: []Section{
				{
					Title: "Repositórios Principais",
					Items: []Item{
						{Label: "⭐ Foxify Social", Value: "Next.js"},
						{Label: "⭐ Encurtador de links", Value: "Node.js"},
						{Label: "⭐ NordisBank", Value: "Next.js"},
					},
				},
				{
					Title: "Estatísticas",
					Chart: true,
					Items: []Item{
						{Label: "Repositórios:", Value: "36"},
						{Label: "Estrelas:", Value: "1"},
						{Label: "Seguidores:", Value: "4"},
					},
				},
			},
			Link: Link{Label: "Visitar GitHub", URL: "https://github.com/foxzinnx"},
		},
		{
			Slug:       "linkedin",
			Label:      "LinkedIn",
			Title:      "LinkedIn Profile",
			Glyph:      "in",
			Color:      "#89b4fa",
			Heading:    "BRYAN GOMES",
			Subheading: "Desenvolvedor Full Stack",
			Sections: []Section{
				{
					Title: "Experiência",
					Items: []Item{
						{Label: "CEO | Desenvolvedor", Value: "Foxify Social • 2025 - Presente"},
						{Label: "Designer Gráfico", Value: "WP Assesoria • Mai-2022 - Jan-2023"},
					},
				},
				{
					Title: "Habilidades",
					Items: []Item{
						{Label: "React"}, {Label: "Next.js"}, {Label: "Node.js"},
						{Label: "TypeScript"}, {Label: "Javascript"}, {Label: "TailwindCSS"},
						{Label: "Python"}, {Label: "PostgreSQL"}, {Label: "SQL"},
						{Label: "MongoDB"}, {Label: "JWT"},
					},
				},
			},
			Link: Link{Label: "Visitar LinkedIn", URL: "https://linkedin.com/in/bryangomes"},
		},
		{
			Slug:  "email",
			Label: "Email",
			Glyph: "@",
			Color: "#f38ba8",
			Href:  "mailto:bryangomes16624@gmail.com",
		},
		{
			Slug:  "curriculo",
			Label: "Currículo",
			Glyph: "≡",
			Color: "#a6e3a1",
			Href:  "/curriculo.pdf",
		},
		{
			Slug:  "projetos",
			Label: "Projetos",
			Title: "Projetos",
			Glyph: "</>",
			Color: "#cba6f7",
			Note:  "Depois arrumo isso",
		},
		{
			Slug:  "sobre",
			Label: "Sobre Mim",
			Title: "Sobre Mim",
			Glyph: "☺",
			Color: "#fab387",
			Note:  "Depois arrumo isso",
		},
	}
}
