package config

type App struct {
	Port                 string `env:"APP_PORT" default:"8080"`
	DatabaseURL          string `env:"DATABASE_URL,required"`
	JWTSecret            string `env:"JWT_SECRET,required"`
	PaymentAPIKey        string `env:"PAYMENT_API_KEY"`
	PaymentCallbackToken string `env:"PAYMENT_CALLBACK_TOKEN"`
	StorageUploadURL     string `env:"STORAGE_UPLOAD_URL"`
	StorageAPIKey        string `env:"STORAGE_API_KEY"`
	StorageRootFolder    string `env:"STORAGE_ROOT_FOLDER" default:"rentall"`
	Env                  string `env:"APP_ENV" default:"dev"`
}
