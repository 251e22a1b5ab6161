package main

import (
	"fmt"

	"github.com/caterhub/caterhub-api/internal/config"
	"github.com/caterhub/caterhub-api/internal/database"
	"github.com/caterhub/caterhub-api/internal/models"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	adminName     string
	adminEmail    string
	adminPassword string
)

var bootstrapAdminCmd = &cobra.Command{
	Use:   "bootstrap-admin",
	Short: "Create the first super admin account",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		db := database.Connect(cfg)

		var count int64
		if err := db.Model(&models.AdminProfile{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return fmt.Errorf("an admin account already exists; use the API to assign further admins")
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := models.User{
			Name:           adminName,
			Email:          adminEmail,
			HashedPassword: string(hashed),
			Role:           models.RoleAdmin,
		}
		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&user).Error; err != nil {
				return err
			}
			return tx.Create(&models.AdminProfile{
				UserID: user.ID,
				Type:   models.AdminTypeSuper,
			}).Error
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created super admin %s (%s)\n", user.Name, user.Email)
		return nil
	},
}

func init() {
	bootstrapAdminCmd.Flags().StringVar(&adminName, "name", "", "Full name of the admin")
	bootstrapAdminCmd.Flags().StringVar(&adminEmail, "email", "", "Email address used to log in")
	bootstrapAdminCmd.Flags().StringVar(&adminPassword, "password", "", "Initial password")
	bootstrapAdminCmd.MarkFlagRequired("name")
	bootstrapAdminCmd.MarkFlagRequired("email")
	bootstrapAdminCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(bootstrapAdminCmd)
}
