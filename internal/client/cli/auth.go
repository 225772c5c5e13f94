package cli

import (
	"context"
	"errors"
	"log"

	"github.com/avlasov/fileshare/internal/common"
)

func (a *App) Register(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "-Enter username")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)

	err = a.api.Register(ctx, userName, password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			log.Printf("Username already taken")
		} else {
			log.Printf("Registration unsuccessfull: %s", err.Error())
		}
		return
	}

	a.userName = userName
	log.Printf("Registered and logged in")
}

func (a *App) Login(ctx context.Context) {

	userName, err := GetSimpleText(a.reader, "-Enter username")
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	password, err := GetPassword()
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	defer common.WipeByteArray(password)

	err = a.api.Login(ctx, userName, password)
	if err != nil {
		log.Printf("Login unsuccessfull: %s", err.Error())
		return
	}

	a.userName = userName
	log.Printf("Login successfull")
}
