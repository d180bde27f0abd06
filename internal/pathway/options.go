package pathway

// Option groups as named in the locale tables' constants section.
const (
	GroupAcademicBackgrounds = "academic_backgrounds"
	GroupLearningPace        = "learning_pace_options"
	GroupCommonSkills        = "common_skills"
	GroupCareerAspirations   = "career_aspirations"
)

// AcademicBackgrounds are the selectable highest-education levels.
var AcademicBackgrounds = []string{
	"Below 8th Standard",
	"8th Pass",
	"10th Pass",
	"12th Pass / Intermediate",
	"ITI Certificate",
	"Polytechnic Diploma",
	"Vocational Training Certificate",
	"Undergraduate (Pursuing)",
	"Graduate Degree (e.g., B.A, B.Sc, B.Com, BCA, B.Tech, B.E, MBBS)",
	"Postgraduate Degree (e.g., M.A, M.Sc, MBA, MCA, M.Tech, MD, MS)",
	"Doctorate (PhD)",
}

// LearningPaceOptions are the selectable study schedules.
var LearningPaceOptions = []string{
	"Full-time",
	"Part-time",
	"Weekend only",
	"Self-paced (Online)",
	"Flexible (Hybrid)",
}

// CommonSkills are the prior skills offered as checkboxes.
var CommonSkills = []string{
	// Technical
	"Programming (Java, Python, C, etc.)",
	"Web Development (HTML, CSS, PHP, JS)",
	"Data Science / AI / ML",
	"Database Management (SQL, MongoDB)",
	"Cloud Computing (AWS, IBM Watson, Azure)",
	"Automation (UiPath, RPA)",
	"Cybersecurity",
	"Mobile Development",
	"UI/UX Design",
	"Graphic Design",
	"Video Editing",

	// Analytical
	"Problem-Solving",
	"Data Analysis",
	"Critical Thinking",
	"Research & Development",

	// Business
	"Project Management",
	"Team Collaboration",
	"Leadership / Coordination",
	"Entrepreneurship / Business Planning",
	"Marketing & Strategy",
	"Digital Marketing",
	"Sales",
	"Accounting",
	"Customer Service",

	// Creative
	"Innovation & Idea Generation",
	"Content Writing / Presentation",
	"Design Thinking",
	"Public Speaking",

	// Soft skills
	"Communication Skills",
	"Time Management",
	"Adaptability",
	"Decision Making",
	"Networking",
	"Spoken English",

	// Tools
	"IBM Watson",
	"UiPath (RPA)",
	"Git/GitHub",
	"MS Office / Google Workspace",

	// Vocational
	"Data Entry",
	"Electrical Wiring",
	"Plumbing",
	"Welding",
	"Carpentry",
	"Automotive Repair",
	"Cooking & Baking",
	"Healthcare Assistance",
	"Mechanical Drawing",
}

// CareerAspirations are suggested goals for the aspiration field.
var CareerAspirations = []string{
	"Technologist / Engineer",
	"Data Analyst / AI Specialist",
	"Doctor / Medical Professional",
	"Government / Public Sector",
	"Researcher / Scientist",
	"Innovator / Problem Solver",
	"Entrepreneur / Startup Founder",
	"Business Leader / Manager",
	"Social Entrepreneur / Change Maker",
	"Educator / Mentor",
	"Creative Designer / Innovator",
	"Global Professional / International Career",
	"Full Stack Developer",
	"Cloud Computing Engineer",
	"Cybersecurity Analyst",
	"Digital Marketing Manager",
	"Logistics and Supply Chain Manager",
	"Solar Panel Technician",
	"EV Charging Station Technician",
	"Organic Farming Specialist",
	"Drone Operator",
	"3D Printing Technician",
	"AR/VR Developer",
	"Robotics Engineer",
	"Certified Nursing Assistant (CNA)",
	"Medical Lab Technician",
}
