package models

// Ministry is one of the church's ministries
type Ministry struct {
	ID           string `json:"id" yaml:"id"`
	Slug         string `json:"slug" yaml:"slug"`
	Title        string `json:"title" yaml:"title"`
	Description  string `json:"description" yaml:"description"`
	ImageURL     string `json:"imageUrl" yaml:"image_url"`
	MeetingDay   string `json:"meetingDay,omitempty" yaml:"meeting_day,omitempty"`
	MeetingTime  string `json:"meetingTime,omitempty" yaml:"meeting_time,omitempty"`
	Leader       string `json:"leader,omitempty" yaml:"leader,omitempty"`
	ContactEmail string `json:"contactEmail,omitempty" yaml:"contact_email,omitempty"`
}

// SocialLinks holds handles on social networks
type SocialLinks struct {
	Twitter   string `json:"twitter,omitempty" yaml:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" yaml:"facebook,omitempty"`
	Instagram string `json:"instagram,omitempty" yaml:"instagram,omitempty"`
}

// StaffMember is a pastor, elder or ministry leader
type StaffMember struct {
	ID       string       `json:"id" yaml:"id"`
	Name     string       `json:"name" yaml:"name"`
	Role     string       `json:"role" yaml:"role"`
	Bio      string       `json:"bio" yaml:"bio"`
	ImageURL string       `json:"imageUrl" yaml:"image_url"`
	Email    string       `json:"email,omitempty" yaml:"email,omitempty"`
	Phone    string       `json:"phone,omitempty" yaml:"phone,omitempty"`
	Social   *SocialLinks `json:"social,omitempty" yaml:"social,omitempty"`
}

// LeadershipTeam groups staff members
type LeadershipTeam struct {
	Title       string        `json:"title" yaml:"title"`
	Description string        `json:"description" yaml:"description"`
	Members     []StaffMember `json:"members" yaml:"members"`
}
