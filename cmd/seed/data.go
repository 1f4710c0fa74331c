package main

import (
	"time"

	"github.com/rishusinha26/portfolio-backend/internal/domain/entity"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func dayPtr(s string) *time.Time {
	t := day(s)
	return &t
}

var sampleProjects = []entity.Project{
	{
		Title:       "FinFlow - AI Powered Personal Finance Companion",
		Description: "Full-stack personal finance application for tracking expenses, investments and debts in one place, with real-time sync, AI-driven insights, interactive dashboards and a chatbot assistant.",
		TechStack:   []string{"React 18", "TypeScript", "TailwindCSS", "Recharts", "Node.js", "Express.js", "Firebase", "GEMINI API"},
		GithubURL:   "https://github.com/rishusinha26/fin-flow1",
		ImageURL:    "https://images.unsplash.com/photo-1554224155-6726b3ff858f?w=800",
		Featured:    true,
		Order:       1,
	},
	{
		Title:       "CareerMitra - AI-Powered Educational Guidance Platform",
		Description: "Educational guidance platform with aptitude quizzes, personalised career recommendations, a searchable college directory, a deadline tracker and multilingual support.",
		TechStack:   []string{"React 18", "Vite", "TailwindCSS", "Node.js", "Express.js", "MongoDB", "Firebase", "Axios"},
		GithubURL:   "https://github.com/rishusinha26/SIH-HACK",
		ImageURL:    "https://images.unsplash.com/photo-1523240795612-9a054b0db644?w=800",
		Featured:    true,
		Order:       2,
	},
	{
		Title:       "WasteNot: AI-Powered Food Waste Reduction Platform",
		Description: "Food waste reduction platform connecting farms, restaurants and food banks, with impact tracking, accessible UI and Firebase authentication.",
		TechStack:   []string{"Next.js 15+", "TypeScript", "TailwindCSS", "shadcn/ui", "React Hook Form", "Zod", "Firebase"},
		GithubURL:   "https://github.com/rishusinha26/wasteNott",
		ImageURL:    "https://images.unsplash.com/photo-1532996122724-e3c354a0b15b?w=800",
		Featured:    true,
		Order:       3,
	},
	{
		Title:       "Netflix Clone",
		Description: "Netflix clone with authentication, movie browsing, search and responsive design backed by the TMDB API.",
		TechStack:   []string{"React", "JavaScript", "CSS3", "Firebase", "TMDB API"},
		GithubURL:   "https://github.com/rishusinha26/netlix",
		ImageURL:    "https://images.unsplash.com/photo-1574375927938-d5a98e8ffe85?w=800",
		Order:       4,
	},
	{
		Title:       "Tic-Tac-Toe Game",
		Description: "Interactive Tic-Tac-Toe with game state management, winner detection and score tracking.",
		TechStack:   []string{"HTML5", "CSS3", "JavaScript", "DOM Manipulation"},
		GithubURL:   "https://github.com/rishusinha26/tic-tac-toe",
		ImageURL:    "https://images.unsplash.com/photo-1611996575749-79a3a250f948?w=800",
		Order:       5,
	},
	{
		Title:       "AI Image Generator",
		Description: "Generates images from text prompts through an AI image API.",
		TechStack:   []string{"React", "JavaScript", "CSS3", "OpenAI API", "REST API"},
		GithubURL:   "https://github.com/rishusinha26/image-generator",
		ImageURL:    "https://images.unsplash.com/photo-1547954575-855750c57bd3?w=800",
		Order:       6,
	},
}

var sampleExperiences = []entity.Experience{
	{
		Type:         entity.ExperienceEducation,
		Title:        "10th Grade - CBSE",
		Organization: "Delhi Public School Hazaribagh",
		Location:     "Hazaribagh, Jharkhand",
		StartDate:    day("2019-04-01"),
		EndDate:      dayPtr("2020-03-31"),
		Description:  "Completed 10th grade with 82% in CBSE board examination.",
		Skills:       []string{"Mathematics", "Science", "English"},
		Order:        1,
	},
	{
		Type:         entity.ExperienceEducation,
		Title:        "12th Grade - CBSE",
		Organization: "D.A.V Public School Hazaribagh",
		Location:     "Hazaribagh, Jharkhand",
		StartDate:    day("2021-04-01"),
		EndDate:      dayPtr("2022-03-31"),
		Description:  "Completed 12th grade with 88% in CBSE board examination.",
		Skills:       []string{"Physics", "Chemistry", "Mathematics", "Computer Science"},
		Order:        2,
	},
	{
		Type:         entity.ExperienceEducation,
		Title:        "Bachelor of Engineering in Computer Science",
		Organization: "Siddaganga Institute of Technology",
		Location:     "Tumakuru, Karnataka",
		StartDate:    day("2021-09-01"),
		EndDate:      dayPtr("2025-06-01"),
		Description:  "B.E. in Computer Science and Engineering focused on full-stack development, data structures, algorithms and software engineering.",
		Skills:       []string{"Data Structures", "Algorithms", "Software Engineering", "Database Management", "Web Development"},
		Order:        3,
	},
	{
		Type:           entity.ExperienceHackathon,
		Title:          "SIH College Hackathon - Top 15",
		Organization:   "Smart India Hackathon",
		Location:       "India",
		StartDate:      day("2024-01-01"),
		EndDate:        dayPtr("2024-01-03"),
		Description:    "Top 15 among 70 teams in the Smart India Hackathon college round.",
		Skills:         []string{"JavaScript", "React", "Node.js", "MongoDB", "Git", "Problem Solving"},
		CertificateURL: "https://i.ibb.co/FbL9v3mJ/SIH.jpg",
		Order:          4,
	},
	{
		Type:           entity.ExperienceHackathon,
		Title:          "HACK-CSE-LERATE",
		Organization:   "Siddaganga Institute of Technology",
		Location:       "Tumakuru, Karnataka",
		StartDate:      day("2025-04-05"),
		EndDate:        dayPtr("2025-04-05"),
		Description:    "Participated in the CSE hackathon of the institute.",
		Skills:         []string{"Problem Solving", "Teamwork", "Technical Skills"},
		CertificateURL: "https://i.ibb.co/27Jm4Gf8/cse-hack-literate.jpg",
		Order:          5,
	},
}
