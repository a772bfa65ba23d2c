package domain

import "time"

// TechnicianProfile holds the business details a technician submits for
// review. Any profile change resets verification until an admin approves
// it again.
type TechnicianProfile struct {
	UserID             string    `json:"userId"`
	ServicesProvided   []string  `json:"servicesProvided"`
	BusinessName       string    `json:"businessName"`
	BusinessRegistered bool      `json:"businessRegistered"`
	IncorpNumber       string    `json:"incorpNumber,omitempty"`
	WebsiteLink        string    `json:"websiteLink"`
	SocialMediaLink    []string  `json:"socialMediaLink"`
	Bio                string    `json:"bio"`
	Address            Address   `json:"technicianAddress"`
	IsVerified         bool      `json:"isVerifiedTechnician"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// VerificationStatus tells a technician where they stand in the review
// workflow, mirroring what the dashboard needs to decide what to show.
type VerificationStatus struct {
	HasProfile        bool `json:"hasProfile"`
	IsVerified        bool `json:"isVerified"`
	NeedsSetup        bool `json:"needsSetup"`
	NeedsVerification bool `json:"needsVerification"`
}

// PendingTechnician pairs an unreviewed profile with the applicant's
// contact details for the admin listing.
type PendingTechnician struct {
	Profile   TechnicianProfile `json:"profile"`
	Applicant UserView          `json:"user"`
	Email     string            `json:"email"`
	Phone     string            `json:"phone"`
}
